package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified name of the authority service
	ServiceName = "shipwright.Authority"

	setProcessingGroupActiveMethod = "/" + ServiceName + "/SetProcessingGroupActive"
	setMiningRigActiveMethod       = "/" + ServiceName + "/SetMiningRigActive"
	getSnapshotMethod              = "/" + ServiceName + "/GetSnapshot"
)

// AuthorityService is the server side of the authority contract. Payloads
// are structpb.Struct messages:
//
//	SetProcessingGroupActive {group: number, active: bool} -> {}
//	SetMiningRigActive       {active: bool}                -> {}
//	GetSnapshot              {}                            -> snapshot
type AuthorityService interface {
	SetProcessingGroupActive(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	SetMiningRigActive(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetSnapshot(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// unaryHandler adapts one AuthorityService method to a grpc.MethodDesc handler
func unaryHandler(
	fullMethod string,
	call func(AuthorityService, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthorityService), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AuthorityService), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthorityServiceDesc describes the authority service for grpc.Server
var AuthorityServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthorityService)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SetProcessingGroupActive",
			Handler:    unaryHandler(setProcessingGroupActiveMethod, AuthorityService.SetProcessingGroupActive),
		},
		{
			MethodName: "SetMiningRigActive",
			Handler:    unaryHandler(setMiningRigActiveMethod, AuthorityService.SetMiningRigActive),
		},
		{
			MethodName: "GetSnapshot",
			Handler:    unaryHandler(getSnapshotMethod, AuthorityService.GetSnapshot),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shipwright/authority",
}

// RegisterAuthorityService registers the service implementation
func RegisterAuthorityService(registrar grpc.ServiceRegistrar, service AuthorityService) {
	registrar.RegisterService(&AuthorityServiceDesc, service)
}
