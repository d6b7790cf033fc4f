package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Repository is the persistence port consumed by the services.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]*models.User, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string) ([]*models.Item, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)
	DeleteItemsByOwner(ctx context.Context, ownerID int64) error

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusFromWaiting(ctx context.Context, id int64, status string) error
	ListBookingsByBooker(ctx context.Context, bookerID int64) ([]*models.Booking, error)
	ListBookingsByOwnerItems(ctx context.Context, ownerID int64) ([]*models.Booking, error)
	ListBookingsForItem(ctx context.Context, itemID int64) ([]*models.Booking, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsForItem(ctx context.Context, itemID int64) ([]*models.Comment, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	ListRequests(ctx context.Context, excludeRequesterID int64, limit, offset int) ([]*models.ItemRequest, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// BookingEngine is the projection/eligibility slice of the booking service
// consumed by the item catalog and the comment ledger.
type BookingEngine interface {
	ProjectBookingsForItem(ctx context.Context, itemID int64, now time.Time) (last, next *models.BookingSummary, err error)
	CanComment(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error)
}

type BookingService interface {
	BookingEngine
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error)
	SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error)
	GetByID(ctx context.Context, requesterID, bookingID int64) (*models.Booking, error)
	ListForBooker(ctx context.Context, bookerID int64, state models.State, page models.Page) ([]*models.Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, state models.State, page models.Page) ([]*models.Booking, error)
}

type UserService interface {
	Create(ctx context.Context, name, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type ItemService interface {
	Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error)
	GetByID(ctx context.Context, requesterID, itemID int64) (*models.ItemDetail, error)
	ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.ItemDetail, error)
	Search(ctx context.Context, text string, page models.Page) ([]*models.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) error
}

type CommentService interface {
	Add(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error)
}

type RequestService interface {
	Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error)
	ListOwn(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	ListAll(ctx context.Context, requesterID int64, page models.Page) ([]*models.ItemRequest, error)
	GetByID(ctx context.Context, requesterID, requestID int64) (*models.ItemRequest, error)
}

// ViewCache keeps rendered item views and request-rate counters close to the
// HTTP layer. A nil-safe miss is (nil, nil).
type ViewCache interface {
	GetItemView(ctx context.Context, itemID int64, ownerView bool) (*models.ItemDetail, error)
	SetItemView(ctx context.Context, detail *models.ItemDetail, ownerView bool, ttl time.Duration) error
	InvalidateItemView(ctx context.Context, itemID int64) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
