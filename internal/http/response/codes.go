package response

// 业务状态码与 HTTP 状态码保持一致，客户端依赖其中的
// 208/417 等码值区分重复添加与库存不足等场景
const (
	CodeOK                = 200
	CodeCreated           = 201
	CodeAccepted          = 202
	CodeAlreadyReported   = 208
	CodeBadRequest        = 400
	CodeUnauthorized      = 401
	CodeForbidden         = 403
	CodeNotFound          = 404
	CodeConflict          = 409
	CodeExpectationFailed = 417
	CodeTooManyRequests   = 429
	CodeInternal          = 500
)
