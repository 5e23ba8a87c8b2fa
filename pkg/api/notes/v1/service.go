package notesv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	NotesService_ServiceName                      ="notes.v1.NotesService"
	NotesService_CreateNote_FullMethodName        = "/notes.v1.NotesService/CreateNote"
	NotesService_GetNote_FullMethodName           = "/notes.v1.NotesService/GetNote"
	NotesService_ListNotes_FullMethodName         = "/notes.v1.NotesService/ListNotes"
	NotesService_UpdateNote_FullMethodName        = "/notes.v1.NotesService/UpdateNote"
	NotesService_DeleteNote_FullMethodName        = "/notes.v1.NotesService/DeleteNote"
	NotesService_SubscribeToEvents_FullMethodName = "/notes.v1.NotesService/SubscribeToEvents"
)

// NotesServiceClient клиент сервиса заметок.
// Все вызовы идут с content-subtype json.
type NotesServiceClient interface {
	CreateNote(ctx context.Context, in *CreateNoteRequest, opts ...grpc.CallOption) (*CreateNoteResponse, error)
	GetNote(ctx context.Context, in *GetNoteRequest, opts ...grpc.CallOption) (*GetNoteResponse, error)
	ListNotes(ctx context.Context, in *ListNotesRequest, opts ...grpc.CallOption) (*ListNotesResponse, error)
	UpdateNote(ctx context.Context, in *UpdateNoteRequest, opts ...grpc.CallOption) (*UpdateNoteResponse, error)
	DeleteNote(ctx context.Context, in *DeleteNoteRequest, opts ...grpc.CallOption) (*DeleteNoteResponse, error)
	// SubscribeToEvents server-side streaming: события изменения заметок до отмены ctx
	SubscribeToEvents(ctx context.Context, in *SubscribeToEventsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[NoteEvent], error)
}

type notesServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewNotesServiceClient создает клиент поверх соединения
func NewNotesServiceClient(cc grpc.ClientConnInterface) NotesServiceClient {
	return &notesServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.StaticMethod(), grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *notesServiceClient) CreateNote(ctx context.Context, in *CreateNoteRequest, opts ...grpc.CallOption) (*CreateNoteResponse, error) {
	out := new(CreateNoteResponse)
	if err := c.cc.Invoke(ctx, NotesService_CreateNote_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notesServiceClient) GetNote(ctx context.Context, in *GetNoteRequest, opts ...grpc.CallOption) (*GetNoteResponse, error) {
	out := new(GetNoteResponse)
	if err := c.cc.Invoke(ctx, NotesService_GetNote_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notesServiceClient) ListNotes(ctx context.Context, in *ListNotesRequest, opts ...grpc.CallOption) (*ListNotesResponse, error) {
	out := new(ListNotesResponse)
	if err := c.cc.Invoke(ctx, NotesService_ListNotes_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notesServiceClient) UpdateNote(ctx context.Context, in *UpdateNoteRequest, opts ...grpc.CallOption) (*UpdateNoteResponse, error) {
	out := new(UpdateNoteResponse)
	if err := c.cc.Invoke(ctx, NotesService_UpdateNote_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notesServiceClient) DeleteNote(ctx context.Context, in *DeleteNoteRequest, opts ...grpc.CallOption) (*DeleteNoteResponse, error) {
	out := new(DeleteNoteResponse)
	if err := c.cc.Invoke(ctx, NotesService_DeleteNote_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notesServiceClient) SubscribeToEvents(ctx context.Context, in *SubscribeToEventsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[NoteEvent], error) {
	stream, err := c.cc.NewStream(ctx, &NotesService_ServiceDesc.Streams[0], NotesService_SubscribeToEvents_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[SubscribeToEventsRequest, NoteEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// NotesServiceServer серверная часть сервиса заметок
type NotesServiceServer interface {
	CreateNote(context.Context, *CreateNoteRequest) (*CreateNoteResponse, error)
	GetNote(context.Context, *GetNoteRequest) (*GetNoteResponse, error)
	ListNotes(context.Context, *ListNotesRequest) (*ListNotesResponse, error)
	UpdateNote(context.Context, *UpdateNoteRequest) (*UpdateNoteResponse, error)
	DeleteNote(context.Context, *DeleteNoteRequest) (*DeleteNoteResponse, error)
	SubscribeToEvents(*SubscribeToEventsRequest, grpc.ServerStreamingServer[NoteEvent]) error
	mustEmbedUnimplementedNotesServiceServer()
}

// UnimplementedNotesServiceServer нужно встраивать в реализацию сервера
type UnimplementedNotesServiceServer struct{}

func (UnimplementedNotesServiceServer) CreateNote(context.Context, *CreateNoteRequest) (*CreateNoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateNote not implemented")
}
func (UnimplementedNotesServiceServer) GetNote(context.Context, *GetNoteRequest) (*GetNoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetNote not implemented")
}
func (UnimplementedNotesServiceServer) ListNotes(context.Context, *ListNotesRequest) (*ListNotesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListNotes not implemented")
}
func (UnimplementedNotesServiceServer) UpdateNote(context.Context, *UpdateNoteRequest) (*UpdateNoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateNote not implemented")
}
func (UnimplementedNotesServiceServer) DeleteNote(context.Context, *DeleteNoteRequest) (*DeleteNoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteNote not implemented")
}
func (UnimplementedNotesServiceServer) SubscribeToEvents(*SubscribeToEventsRequest, grpc.ServerStreamingServer[NoteEvent]) error {
	return status.Error(codes.Unimplemented, "method SubscribeToEvents not implemented")
}
func (UnimplementedNotesServiceServer) mustEmbedUnimplementedNotesServiceServer() {}

// RegisterNotesServiceServer регистрирует реализацию сервиса на gRPC сервере
func RegisterNotesServiceServer(s grpc.ServiceRegistrar, srv NotesServiceServer) {
	s.RegisterService(&NotesService_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(NotesServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(NotesServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(NotesServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func subscribeToEventsHandler(srv any, stream grpc.ServerStream) error {
	m := new(SubscribeToEventsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(NotesServiceServer).SubscribeToEvents(m, &grpc.GenericServerStream[SubscribeToEventsRequest, NoteEvent]{ServerStream: stream})
}

// NotesService_ServiceDesc дескриптор сервиса notes.v1.NotesService
var NotesService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: NotesService_ServiceName,
	HandlerType: (*NotesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateNote",
			Handler: unaryHandler(NotesService_CreateNote_FullMethodName, func(s NotesServiceServer, ctx context.Context, in *CreateNoteRequest) (*CreateNoteResponse, error) {
				return s.CreateNote(ctx, in)
			}),
		},
		{
			MethodName: "GetNote",
			Handler: unaryHandler(NotesService_GetNote_FullMethodName, func(s NotesServiceServer, ctx context.Context, in *GetNoteRequest) (*GetNoteResponse, error) {
				return s.GetNote(ctx, in)
			}),
		},
		{
			MethodName: "ListNotes",
			Handler: unaryHandler(NotesService_ListNotes_FullMethodName, func(s NotesServiceServer, ctx context.Context, in *ListNotesRequest) (*ListNotesResponse, error) {
				return s.ListNotes(ctx, in)
			}),
		},
		{
			MethodName: "UpdateNote",
			Handler: unaryHandler(NotesService_UpdateNote_FullMethodName, func(s NotesServiceServer, ctx context.Context, in *UpdateNoteRequest) (*UpdateNoteResponse, error) {
				return s.UpdateNote(ctx, in)
			}),
		},
		{
			MethodName: "DeleteNote",
			Handler: unaryHandler(NotesService_DeleteNote_FullMethodName, func(s NotesServiceServer, ctx context.Context, in *DeleteNoteRequest) (*DeleteNoteResponse, error) {
				return s.DeleteNote(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribeToEvents",
			Handler:       subscribeToEventsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "notes/v1/notes",
}
