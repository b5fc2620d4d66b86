package queue

import (
	"encoding/json"

	"github.com/bookstore-next/internal/constants"

	"github.com/hibiken/asynq"
)

// UserVerifyEmailPayload 注册验证邮件任务载荷
type UserVerifyEmailPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// NewUserVerifyEmailTask 创建注册验证邮件任务
func NewUserVerifyEmailTask(payload UserVerifyEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskUserVerifyEmail, data), nil
}

// UserResetEmailPayload 重置密码邮件任务载荷
type UserResetEmailPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// NewUserResetEmailTask 创建重置密码邮件任务
func NewUserResetEmailTask(payload UserResetEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskUserResetEmail, data), nil
}

// OrderConfirmEmailPayload 订单确认邮件任务载荷
type OrderConfirmEmailPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	Email   string `json:"email"`
	Amount  string `json:"amount"`
}

// NewOrderConfirmEmailTask 创建订单确认邮件任务
func NewOrderConfirmEmailTask(payload OrderConfirmEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskOrderConfirmEmail, data), nil
}
