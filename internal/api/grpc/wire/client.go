package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Client is a typed client for the twooter.Twooter service. Every call is
// sent with the JSON content-subtype.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// WithToken attaches the session bearer token to outgoing calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := new(RegisterResponse)
	if err := c.invoke(ctx, RegisterMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Logon opens the event stream. The first received event carries the token.
func (c *Client) Logon(ctx context.Context, in *LogonRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], LogonMethod, c.options(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[LogonRequest, Event]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *Client) Follow(ctx context.Context, in *FollowRequest, opts ...grpc.CallOption) (*FollowResponse, error) {
	out := new(FollowResponse)
	if err := c.invoke(ctx, FollowMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Unfollow(ctx context.Context, in *FollowRequest, opts ...grpc.CallOption) (*FollowResponse, error) {
	out := new(FollowResponse)
	if err := c.invoke(ctx, UnfollowMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendTwoot(ctx context.Context, in *SendTwootRequest, opts ...grpc.CallOption) (*SendTwootResponse, error) {
	out := new(SendTwootResponse)
	if err := c.invoke(ctx, SendTwootMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteTwoot(ctx context.Context, in *DeleteTwootRequest, opts ...grpc.CallOption) (*DeleteTwootResponse, error) {
	out := new(DeleteTwootResponse)
	if err := c.invoke(ctx, DeleteTwootMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Logoff(ctx context.Context, opts ...grpc.CallOption) error {
	return c.invoke(ctx, LogoffMethod, &Empty{}, &Empty{}, opts)
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	return c.cc.Invoke(ctx, method, in, out, c.options(opts)...)
}

func (c *Client) options(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
