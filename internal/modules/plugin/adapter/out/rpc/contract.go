// Package rpc defines the host↔plugin wire contract. Messages travel
// over go-plugin's gRPC transport encoded with a JSON codec, so plugin
// authors need no protobuf toolchain — a plain struct server and the
// PluginMap below are enough.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey       = "physiq"
	serviceName        = "physiq.plugin.v1.PhysiqPlugin"
	jsonCodecName      = "json"
	methodGetMetadata  = "/" + serviceName + "/GetMetadata"
	methodListCommands = "/" + serviceName + "/ListCommands"
	methodExecute      = "/" + serviceName + "/Execute"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "PHYSIQ_PLUGIN",
	MagicCookieValue: "physiq",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type CommandDescriptor struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Kind            string `json:"kind"`
	InputSchemaJSON string `json:"input_schema_json"`
	TimeoutMS       int32  `json:"timeout_ms"`
}

type ListCommandsResponse struct {
	Commands []CommandDescriptor `json:"commands"`
}

type ExecuteContext struct {
	ConfigDir    string            `json:"config_dir"`
	AnalysisID   string            `json:"analysis_id"`
	AccountEmail string            `json:"account_email"`
	Cwd          string            `json:"cwd"`
	Env          map[string]string `json:"env"`
}

type ExecuteRequest struct {
	CommandID string         `json:"command_id"`
	InputJSON string         `json:"input_json"`
	Context   ExecuteContext `json:"context"`
}

type ExecuteResponse struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	OutputJSON string `json:"output_json"`
	ExitCode   int32  `json:"exit_code"`
}

// PhysiqPluginServer is what a plugin binary implements.
type PhysiqPluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListCommands(ctx context.Context, in *Empty) (*ListCommandsResponse, error)
	Execute(ctx context.Context, in *ExecuteRequest) (*ExecuteResponse, error)
}

// PhysiqPluginClient is the host's view of a running plugin.
type PhysiqPluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListCommands(ctx context.Context) (*ListCommandsResponse, error)
	Execute(ctx context.Context, in *ExecuteRequest) (*ExecuteResponse, error)
}

type physiqPluginClient struct {
	conn *grpc.ClientConn
}

func NewPhysiqPluginClient(conn *grpc.ClientConn) PhysiqPluginClient {
	return &physiqPluginClient{conn: conn}
}

func (c *physiqPluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	return invoke[Metadata](ctx, c.conn, methodGetMetadata, &Empty{})
}

func (c *physiqPluginClient) ListCommands(ctx context.Context) (*ListCommandsResponse, error) {
	return invoke[ListCommandsResponse](ctx, c.conn, methodListCommands, &Empty{})
}

func (c *physiqPluginClient) Execute(ctx context.Context, in *ExecuteRequest) (*ExecuteResponse, error) {
	return invoke[ExecuteResponse](ctx, c.conn, methodExecute, in)
}

func invoke[Resp any](ctx context.Context, conn *grpc.ClientConn, method string, in any) (*Resp, error) {
	out := new(Resp)
	if err := conn.Invoke(ctx, method, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterPhysiqPluginServer(server grpc.ServiceRegistrar, impl PhysiqPluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*PhysiqPluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unaryHandler(methodGetMetadata, func(ctx context.Context, in *Empty) (any, error) {
				return impl.GetMetadata(ctx, in)
			})},
			{MethodName: "ListCommands", Handler: unaryHandler(methodListCommands, func(ctx context.Context, in *Empty) (any, error) {
				return impl.ListCommands(ctx, in)
			})},
			{MethodName: "Execute", Handler: unaryHandler(methodExecute, func(ctx context.Context, in *ExecuteRequest) (any, error) {
				return impl.Execute(ctx, in)
			})},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/plugin-rpc-v1.proto",
	}, impl)
}

// unaryHandler adapts one typed call to the grpc.MethodDesc handler
// shape, decoding into a fresh request and honoring interceptors.
func unaryHandler[Req any](fullMethod string, call func(context.Context, *Req) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		})
	}
}

// GRPCPlugin wires the contract into go-plugin's Plugin interface.
type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl PhysiqPluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterPhysiqPluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewPhysiqPluginClient(conn), nil
}

// PluginMap is shared by host and plugin; the host passes nil impl.
func PluginMap(impl PhysiqPluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
