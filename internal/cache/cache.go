package cache

import (
	"context"
	"fmt"
	"time"

	"hearthside_back_end/internal/database"

	"github.com/redis/go-redis/v9"
)

const (
	CartCacheTTL    = 5 * time.Minute
	ProductCacheTTL = 10 * time.Minute
	OrdersCacheTTL  = 2 * time.Minute
	MethodsCacheTTL = 10 * time.Minute
	CheckoutLockTTL = 30 * time.Second
)

var ctx = context.Background()

// --- Key builders ---

func CartKey(userID string) string { return "cart:" + userID }
func UserOrdersKey(userID string) string { return "orders:" + userID }
func ProductKey(productID string) string { return "product:" + productID }
func checkoutLockKey(userID string) string { return "checkout:lock:" + userID }

const (
	ProductsKey       = "products:active"
	CategoriesKey     = "categories:active"
	PaymentMethodsKey = "payment_methods:active"
	AdminOrdersKey    = "admin:orders"
)

// --- Generic cache ---

func Set(key string, value interface{}, ttl time.Duration) error {
	return database.Redis.Set(ctx, key, value, ttl).Err()
}

func Get(key string) (string, error) {
	return database.Redis.Get(ctx, key).Result()
}

func Delete(keys ...string) {
	if len(keys) == 0 {
		return
	}
	database.Redis.Del(ctx, keys...)
}

// --- Invalidation signals ---
// Every mutation of a cart or an order goes through one of these, so cached
// views are the single source of truth between round trips.

// InvalidateCart drops the cached cart view for one user.
func InvalidateCart(userID string) {
	Delete(CartKey(userID))
}

// InvalidateOrders drops the user's order list plus the admin views.
func InvalidateOrders(userID string) {
	Delete(UserOrdersKey(userID), AdminOrdersKey)
}

// InvalidateCatalog drops the cached product/category listings.
func InvalidateCatalog(productIDs ...string) {
	keys := []string{ProductsKey, CategoriesKey}
	for _, id := range productIDs {
		keys = append(keys, ProductKey(id))
	}
	Delete(keys...)
}

// InvalidatePaymentMethods drops the cached active payment methods.
func InvalidatePaymentMethods() {
	Delete(PaymentMethodsKey)
}

// --- Checkout lock ---
// Guards against double-submitted place-order calls from the same user
// (rapid double click). SETNX with a short TTL: the lock dies on its own if
// the request crashes mid-checkout.

// AcquireCheckoutLock returns true if this caller holds the lock.
func AcquireCheckoutLock(userID string) bool {
	ok, err := database.Redis.SetNX(ctx, checkoutLockKey(userID), "1", CheckoutLockTTL).Result()
	if err != nil {
		// Redis down: let the order through rather than blocking every checkout.
		return true
	}
	return ok
}

// ReleaseCheckoutLock frees the lock after the checkout attempt finishes.
func ReleaseCheckoutLock(userID string) {
	database.Redis.Del(ctx, checkoutLockKey(userID))
}

// --- Rate limiting ---

// IncrementRateLimit bumps a windowed counter and returns its new value.
func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := database.Redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// GetRateLimit reads a windowed counter, zero when absent.
func GetRateLimit(key string) (int64, error) {
	val, err := database.Redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

func RateLimitKey(scope, id string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, id)
}
