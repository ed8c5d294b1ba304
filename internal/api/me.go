// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package api

import (
	"net/http"

	"github.com/wardenhq/warden/internal/platform/apperr"
	"github.com/wardenhq/warden/internal/platform/ctxutil"
	"github.com/wardenhq/warden/internal/platform/respond"
)

// Me handles GET /api/v1/me.
//
// It returns the identity the gate derived for this request. A missing
// identity means the route was mounted outside the gate, which is a wiring
// error rather than a user error.
func Me(writer http.ResponseWriter, request *http.Request) {
	info := ctxutil.GetUserInfo(request.Context())
	if info == nil {
		respond.Error(writer, request, apperr.Unauthorized("No authenticated identity on this request"))
		return
	}

	respond.OK(writer, info)
}
