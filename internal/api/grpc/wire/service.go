// Package wire describes the twooter.Twooter gRPC service: its messages, the
// JSON codec they travel in, the service descriptor and a typed client.
package wire

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "twooter.Twooter"

const (
	RegisterMethod    = "/twooter.Twooter/Register"
	LogonMethod       = "/twooter.Twooter/Logon"
	FollowMethod      = "/twooter.Twooter/Follow"
	UnfollowMethod    = "/twooter.Twooter/Unfollow"
	SendTwootMethod   = "/twooter.Twooter/SendTwoot"
	DeleteTwootMethod = "/twooter.Twooter/DeleteTwoot"
	LogoffMethod      = "/twooter.Twooter/Logoff"
)

// TwooterServer is the server API for the twooter.Twooter service.
type TwooterServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Logon(*LogonRequest, grpc.ServerStreamingServer[Event]) error
	Follow(context.Context, *FollowRequest) (*FollowResponse, error)
	Unfollow(context.Context, *FollowRequest) (*FollowResponse, error)
	SendTwoot(context.Context, *SendTwootRequest) (*SendTwootResponse, error)
	DeleteTwoot(context.Context, *DeleteTwootRequest) (*DeleteTwootResponse, error)
	Logoff(context.Context, *Empty) (*Empty, error)
}

// RegisterTwooterServer registers srv on s.
func RegisterTwooterServer(s grpc.ServiceRegistrar, srv TwooterServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc is the grpc.ServiceDesc for the twooter.Twooter service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TwooterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    unaryHandler(RegisterMethod, TwooterServer.Register),
		},
		{
			MethodName: "Follow",
			Handler:    unaryHandler(FollowMethod, TwooterServer.Follow),
		},
		{
			MethodName: "Unfollow",
			Handler:    unaryHandler(UnfollowMethod, TwooterServer.Unfollow),
		},
		{
			MethodName: "SendTwoot",
			Handler:    unaryHandler(SendTwootMethod, TwooterServer.SendTwoot),
		},
		{
			MethodName: "DeleteTwoot",
			Handler:    unaryHandler(DeleteTwootMethod, TwooterServer.DeleteTwoot),
		},
		{
			MethodName: "Logoff",
			Handler:    unaryHandler(LogoffMethod, TwooterServer.Logoff),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Logon",
			Handler:       logonHandler,
			ServerStreams: true,
		},
	},
	Metadata: "twooter.json",
}

func unaryHandler[Req, Res any](
	fullMethod string,
	call func(TwooterServer, context.Context, *Req) (*Res, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TwooterServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TwooterServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func logonHandler(srv any, stream grpc.ServerStream) error {
	in := new(LogonRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(TwooterServer).Logon(in, &grpc.GenericServerStream[LogonRequest, Event]{ServerStream: stream})
}
