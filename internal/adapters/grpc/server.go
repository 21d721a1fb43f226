package grpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
)

// Authority is the authoritative simulation the server exposes
type Authority interface {
	SetProcessingGroupActive(ctx context.Context, groupIndex int, active bool) error
	SetMiningRigActive(ctx context.Context, active bool) error
	State() simulation.HostState
}

// AuthorityServer implements AuthorityService on top of an Authority
type AuthorityServer struct {
	authority Authority
	logger    *slog.Logger
}

// NewAuthorityServer creates the service implementation
func NewAuthorityServer(authority Authority, logger *slog.Logger) *AuthorityServer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AuthorityServer{authority: authority, logger: logger}
}

func (s *AuthorityServer) SetProcessingGroupActive(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	groupValue, ok := fields["group"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "group is required")
	}
	group := int(groupValue.GetNumberValue())
	active := fields["active"].GetBoolValue()

	if err := s.authority.SetProcessingGroupActive(ctx, group, active); err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info("processing group toggled", "group", group, "active", active)
	return &structpb.Struct{}, nil
}

func (s *AuthorityServer) SetMiningRigActive(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	active := in.GetFields()["active"].GetBoolValue()
	if err := s.authority.SetMiningRigActive(ctx, active); err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info("mining rig toggled", "active", active)
	return &structpb.Struct{}, nil
}

func (s *AuthorityServer) GetSnapshot(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	out, err := EncodeState(s.authority.State())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode snapshot: %v", err)
	}
	return out, nil
}

// toStatus maps domain errors onto gRPC codes
func toStatus(err error) error {
	var unknownGroup *shared.UnknownGroupError
	var notAuthority *shared.NotAuthorityError
	var domainErr *shared.DomainError
	switch {
	case errors.As(err, &unknownGroup):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &notAuthority):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &domainErr):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// loggingInterceptor logs every call with its duration and outcome
func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			logger.Warn("authority call failed", "method", info.FullMethod, "duration", time.Since(start), "error", err)
		} else {
			logger.Debug("authority call", "method", info.FullMethod, "duration", time.Since(start))
		}
		return resp, err
	}
}

// NewGRPCServer builds a grpc.Server exposing the authority service
func NewGRPCServer(service *AuthorityServer) *grpc.Server {
	server := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(service.logger)))
	RegisterAuthorityService(server, service)
	return server
}

// Serve runs the server on the listener until ctx is done, then stops gracefully
func Serve(ctx context.Context, server *grpc.Server, listener net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		server.GracefulStop()
		return nil
	}
}
