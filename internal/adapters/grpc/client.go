package grpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

// AuthorityClient talks to a remote authority. It implements
// processing.RequestForwarder so replicas can forward toggles.
type AuthorityClient struct {
	conn    *grpc.ClientConn
	catalog *catalog.Catalog
	timeout time.Duration
}

// NewAuthorityClient connects to the authority at target. Extra dial
// options are appended after the insecure transport credentials.
func NewAuthorityClient(target string, cat *catalog.Catalog, timeout time.Duration, opts ...grpc.DialOption) (*AuthorityClient, error) {
	dialOptions := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, dialOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to authority: %w", err)
	}
	return &AuthorityClient{conn: conn, catalog: cat, timeout: timeout}, nil
}

// Close closes the gRPC connection
func (c *AuthorityClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *AuthorityClient) invoke(ctx context.Context, method string, in map[string]interface{}) (*structpb.Struct, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	request, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	response := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, request, response); err != nil {
		return nil, err
	}
	return response, nil
}

// ForwardProcessingGroupActive implements processing.RequestForwarder
func (c *AuthorityClient) ForwardProcessingGroupActive(ctx context.Context, groupIndex int, active bool) error {
	_, err := c.invoke(ctx, setProcessingGroupActiveMethod, map[string]interface{}{
		"group":  groupIndex,
		"active": active,
	})
	if err != nil {
		return fmt.Errorf("failed to toggle group %d: %w", groupIndex, err)
	}
	return nil
}

// ForwardMiningRigActive implements processing.RequestForwarder
func (c *AuthorityClient) ForwardMiningRigActive(ctx context.Context, active bool) error {
	if _, err := c.invoke(ctx, setMiningRigActiveMethod, map[string]interface{}{"active": active}); err != nil {
		return fmt.Errorf("failed to toggle mining rig: %w", err)
	}
	return nil
}

// GetSnapshot fetches the current authority state
func (c *AuthorityClient) GetSnapshot(ctx context.Context) (simulation.HostState, error) {
	response, err := c.invoke(ctx, getSnapshotMethod, map[string]interface{}{})
	if err != nil {
		return simulation.HostState{}, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	return DecodeState(response, c.catalog)
}
