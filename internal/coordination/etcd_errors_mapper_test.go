// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package coordination

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapEtcdError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil passes through",
			err:  nil,
			want: nil,
		},
		{
			name: "deadline exceeded is unavailable",
			err:  context.DeadlineExceeded,
			want: ErrUnavailable,
		},
		{
			name: "cancellation is unavailable",
			err:  context.Canceled,
			want: ErrUnavailable,
		},
		{
			name: "permission denied",
			err:  status.Error(codes.PermissionDenied, "auth: permission denied"),
			want: ErrPermissionDenied,
		},
		{
			name: "unauthenticated",
			err:  status.Error(codes.Unauthenticated, "auth: invalid token"),
			want: ErrPermissionDenied,
		},
		{
			name: "other grpc codes are unavailable",
			err:  status.Error(codes.Unavailable, "etcdserver: leader changed"),
			want: ErrUnavailable,
		},
		{
			name: "plain errors are unavailable",
			err:  errors.New("connection reset"),
			want: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapEtcdError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}

			assert.ErrorIs(t, got, tt.want)
		})
	}
}
