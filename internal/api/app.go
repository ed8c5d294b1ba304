// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

package api

import (
	"net/http"

	"github.com/wardenhq/warden/internal/platform/ctxutil"
	"github.com/wardenhq/warden/internal/platform/respond"
)

// DefaultApp is the placeholder application surface mounted behind the gate.
//
// Deployments normally replace this with a reverse proxy or static file
// server for the real application; the gateway's contract is only that
// whatever sits here is reached exclusively by authorized identities.
func DefaultApp() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		info := ctxutil.GetUserInfo(request.Context())

		payload := map[string]string{"status": "authorized"}
		if info != nil {
			payload["email"] = info.Email
		}

		respond.OK(writer, payload)
	})
}
