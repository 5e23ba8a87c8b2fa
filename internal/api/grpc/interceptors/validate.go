package interceptors

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"notes-backend/internal/model"
)

// ValidateUnaryInterceptor валидирует входящие запросы по тегам validate
// (go-playground/validator). Правила описаны в структурах pkg/api/notes/v1.
// Если валидация не пройдена, возвращается InvalidArgument с BadRequest деталями.
func ValidateUnaryInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if err := model.ValidateStruct(req); err != nil {
		var invalid *model.ValidationError
		if !errors.As(err, &invalid) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		st := status.New(codes.InvalidArgument, err.Error())
		detailed, detailsErr := st.WithDetails(
			&errdetails.ErrorInfo{
				Reason:   "VALIDATION_ERROR",
				Domain:   "notes.v1",
				Metadata: map[string]string{"field": invalid.Field},
			},
			&errdetails.BadRequest{
				FieldViolations: []*errdetails.BadRequest_FieldViolation{
					{Field: invalid.Field, Description: invalid.Reason},
				},
			},
		)
		if detailsErr != nil {
			return nil, st.Err()
		}
		return nil, detailed.Err()
	}

	return handler(ctx, req)
}
