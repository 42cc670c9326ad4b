package router

import (
	"io"

	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := gctx.Request.Context()
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)
		ctx = xcontext.WithHTTPWriter(ctx, gctx.Writer)

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		for _, middleware := range router.befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				writeError(gctx, err)
				return
			}

			ctx = newCtx
		}

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = gctx.ShouldBindQuery(&req)
		default:
			err = gctx.ShouldBindJSON(&req)
			if errors.Is(err, io.EOF) {
				// An empty body means a request with all default fields.
				err = nil
			}
		}

		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			bindErr := errorx.New(errorx.BadRequest, "Cannot bind the request")
			ctx = xcontext.WithError(ctx, bindErr)
			writeError(gctx, bindErr)
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(gctx, err)
			return
		}

		ctx = xcontext.WithResponse(ctx, resp)
		gctx.JSON(http.StatusOK, newResponse(resp))
	}
}

func writeError(gctx *gin.Context, err error) {
	status, resp := newErrorResponse(err)
	gctx.AbortWithStatusJSON(status, resp)
}
