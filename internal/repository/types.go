package repository

// BookListFilter 查询书籍列表的过滤条件
type BookListFilter struct {
	Page         int
	PageSize     int
	Search       string
	Sort         string
	SellerID     uint
	OnlyApproved bool
	PendingOnly  bool
	WithSeller   bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	OrderNo  string
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page     int
	PageSize int
	BookID   uint
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
}
