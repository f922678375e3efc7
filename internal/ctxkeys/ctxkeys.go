package ctxkeys

import "context"

// TraceIDKey 贯穿一次调用链的 trace id 上下文键
type TraceIDKey struct{}

// WithTraceID 把 trace id 写入上下文
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey{}, traceID)
}

// TraceID 从上下文取出 trace id，缺失时返回空串
func TraceID(ctx context.Context) string {
	if v, ok := ctx.Value(TraceIDKey{}).(string); ok {
		return v
	}
	return ""
}
