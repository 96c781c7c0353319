// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package coordination

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapEtcdError classifies a gRPC-level etcd failure into the package's
// sentinel errors so that callers can branch with errors.Is without knowing
// the transport.
func mapEtcdError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch st.Code() {
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrPermissionDenied, st.Message())
	default:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	}
}
