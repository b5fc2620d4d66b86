package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/bookstore-next/internal/constants"
	"github.com/bookstore-next/internal/logger"
	"github.com/bookstore-next/internal/provider"
	"github.com/bookstore-next/internal/queue"
	"github.com/bookstore-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(constants.TaskUserVerifyEmail, c.handleUserVerifyEmail)
	mux.HandleFunc(constants.TaskUserResetEmail, c.handleUserResetEmail)
	mux.HandleFunc(constants.TaskOrderConfirmEmail, c.handleOrderConfirmEmail)
}

func (c *Consumer) handleUserVerifyEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_user_verify_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.UserVerifyEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_user_verify_email_unmarshal_failed", "error", err)
		return err
	}
	return c.sendVerifyCodeEmail(payload.Email, payload.Code, constants.VerifyPurposeVerifyEmail)
}

func (c *Consumer) handleUserResetEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_user_reset_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.UserResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_user_reset_email_unmarshal_failed", "error", err)
		return err
	}
	return c.sendVerifyCodeEmail(payload.Email, payload.Code, constants.VerifyPurposeReset)
}

func (c *Consumer) sendVerifyCodeEmail(email, code, purpose string) error {
	email = strings.TrimSpace(email)
	if email == "" || code == "" {
		logger.Debugw("worker_verify_code_email_skip_invalid_payload", "purpose", purpose, "email_empty", email == "")
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_verify_code_email_skip_email_service_nil", "purpose", purpose)
		return nil
	}
	if err := c.EmailService.SendVerifyCode(email, code, purpose); err != nil {
		if errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_verify_code_email_skip_disabled", "purpose", purpose)
			return nil
		}
		logger.Warnw("worker_verify_code_email_send_failed", "purpose", purpose, "receiver_email", email, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderConfirmEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirm_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirm_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderNo == "" {
		logger.Debugw("worker_order_confirm_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	receiverEmail := strings.TrimSpace(payload.Email)
	if receiverEmail == "" && payload.OrderID != 0 {
		order, err := c.OrderRepo.GetByID(payload.OrderID)
		if err != nil {
			logger.Warnw("worker_order_confirm_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
		if order == nil {
			logger.Debugw("worker_order_confirm_email_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw("worker_order_confirm_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
			return err
		}
		if user != nil {
			receiverEmail = strings.TrimSpace(user.Email)
		}
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_confirm_email_skip_empty_receiver", "order_id", payload.OrderID, "order_no", payload.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_confirm_email_skip_email_service_nil", "order_no", payload.OrderNo)
		return nil
	}
	if err := c.EmailService.SendOrderConfirmation(receiverEmail, payload.OrderNo, payload.Amount); err != nil {
		if errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_confirm_email_skip_disabled", "order_no", payload.OrderNo)
			return nil
		}
		logger.Warnw("worker_order_confirm_email_send_failed",
			"order_id", payload.OrderID,
			"order_no", payload.OrderNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}
