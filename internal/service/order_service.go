package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/bookstore-next/internal/constants"
	"github.com/bookstore-next/internal/logger"
	"github.com/bookstore-next/internal/models"
	"github.com/bookstore-next/internal/queue"
	"github.com/bookstore-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	bookRepo    repository.BookRepository
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	bookRepo repository.BookRepository,
	addressRepo repository.AddressRepository,
	userRepo repository.UserRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		bookRepo:    bookRepo,
		addressRepo: addressRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// Checkout 结算购物车，整单成败在同一事务内完成
// 任一条目库存不足则整单失败，不产生部分订单；
// 扣库存使用条件更新，避免校验与扣减之间被并发订单抢走库存
func (s *OrderService) Checkout(userID uint) (*models.Order, error) {
	var order *models.Order

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		bookRepo := s.bookRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		addressRepo := s.addressRepo.WithTx(tx)

		cartItems, err := cartRepo.ListByUser(userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		// 先整体校验库存，保证失败时不改动任何数据
		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			book, err := bookRepo.GetByID(item.BookID)
			if err != nil {
				return err
			}
			if book == nil || !book.IsApproved {
				name := fmt.Sprintf("book #%d", item.BookID)
				if book != nil {
					name = book.Name
				}
				return &InsufficientStockError{BookName: name}
			}
			if item.Quantity > book.Quantity {
				return &InsufficientStockError{BookName: book.Name}
			}

			orderItems = append(orderItems, models.OrderItem{
				BookID:     book.ID,
				BookName:   book.Name,
				AuthorName: book.AuthorName,
				Price:      book.Price,
				Quantity:   item.Quantity,
			})
			total = total.Add(book.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		orderNo, err := generateOrderNo()
		if err != nil {
			return err
		}
		now := time.Now()
		order = &models.Order{
			OrderNo:     orderNo,
			UserID:      userID,
			Status:      constants.OrderStatusPlaced,
			TotalAmount: models.NewMoneyFromDecimal(total),
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		// 有收货地址则关联到订单
		home, err := addressRepo.GetByUserAndType(userID, constants.AddressTypeHome)
		if err != nil {
			return err
		}
		if home != nil {
			order.AddressID = &home.ID
		}

		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		order.Items = orderItems

		// 条件扣减：并发下被抢走库存时整单回滚
		for _, item := range orderItems {
			affected, err := bookRepo.DecrementStock(item.BookID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &InsufficientStockError{BookName: item.BookName}
			}
		}

		return cartRepo.ClearByUser(userID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOrderPlaced(order)
	return order, nil
}

// notifyOrderPlaced 下单成功后推送确认邮件任务，失败仅记日志
func (s *OrderService) notifyOrderPlaced(order *models.Order) {
	if order == nil || !s.queueClient.Enabled() {
		return
	}
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil || user == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderConfirmEmail(queue.OrderConfirmEmailPayload{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
		Email:   user.Email,
		Amount:  order.TotalAmount.String(),
	}); err != nil {
		logger.Warnw("order_confirm_email_enqueue_failed",
			"order_no", order.OrderNo,
			"error", err,
		)
	}
}

// ListMyOrders 我的订单列表
func (s *OrderService) ListMyOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// GetOrder 查看自己的订单详情
func (s *OrderService) GetOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// generateOrderNo 生成订单号：BK + 时间戳 + 随机数
func generateOrderNo() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BK%d%06d", time.Now().UnixNano()/1e6, n.Int64()), nil
}
