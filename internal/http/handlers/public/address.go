package public

import (
	"github.com/bookstore-next/internal/http/response"
	"github.com/bookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 地址请求
type AddressRequest struct {
	Type       string `json:"type"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ListAddresses 地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addresses, err := h.AddressService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "list addresses failed", err)
		return
	}
	response.Success(c, gin.H{"addresses": addresses})
}

// UpsertAddress 保存地址，同类型覆盖更新
func (h *Handler) UpsertAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	address, err := h.AddressService.Upsert(uid, service.AddressInput{
		Type:       req.Type,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "save address failed")
		return
	}
	response.Success(c, gin.H{"address": address})
}

// DeleteAddress 删除某类型地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.AddressService.Delete(uid, c.Param("type")); err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "delete address failed")
		return
	}
	response.SuccessWithMsg(c, "address deleted", gin.H{"deleted": true})
}
