package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evently-hq/event-management-backend/config"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// InitRedis connects the shared Redis client used for check-in OTPs and
// announcement dispatch quotas
func InitRedis(cfg *config.Config) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := RedisClient.Ping(Ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	log.Println("✅ Redis connected")
	return nil
}

// ===========================
// 🔐 Check-in OTP storage

func otpKey(registrationID uint) string {
	return fmt.Sprintf("checkin:otp:%d", registrationID)
}

// StoreCheckinOTP saves a one-time code for a registration with a TTL
func StoreCheckinOTP(registrationID uint, code string, ttl time.Duration) error {
	return RedisClient.Set(Ctx, otpKey(registrationID), code, ttl).Err()
}

// ConsumeCheckinOTP fetches and deletes the stored code in one round trip,
// so a code can never verify twice
func ConsumeCheckinOTP(registrationID uint) (string, error) {
	val, err := RedisClient.GetDel(Ctx, otpKey(registrationID)).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("otp expired or not issued")
	}
	return val, err
}

// ===========================
// 🔑 Generic token storage (password reset)

func SetToken(key, value string, ttl time.Duration) error {
	return RedisClient.Set(Ctx, key, value, ttl).Err()
}

func GetToken(key string) (string, error) {
	return RedisClient.Get(Ctx, key).Result()
}

func DeleteToken(key string) error {
	return RedisClient.Del(Ctx, key).Err()
}

// ===========================
// 🚦 Announcement quota counters

func quotaKey(eventID uint) string {
	return fmt.Sprintf("announce:quota:%d:%s", eventID, time.Now().UTC().Format("2006010215"))
}

// IncrAnnounceQuota counts messages sent for an event in the current hour
// and reports whether the batch still fits inside the quota
func IncrAnnounceQuota(eventID uint, n int, limit int) (bool, error) {
	key := quotaKey(eventID)
	total, err := RedisClient.IncrBy(Ctx, key, int64(n)).Result()
	if err != nil {
		return false, err
	}
	// first writer sets the expiry for the hourly window
	RedisClient.Expire(Ctx, key, time.Hour)
	return total <= int64(limit), nil
}
