// db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	encryptionKey = []byte(viper.GetString("redis.encryptionKey"))
	if len(encryptionKey) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// Actor scopes carry jurisdiction grants, so they are encrypted at rest in
// the cache like any other authorization material.
func CacheActorScope(ctx context.Context, scope *model.ActorScope) error {
	scopeJSON, err := json.Marshal(scope)
	if err != nil {
		return fmt.Errorf("failed to marshal actor scope: %w", err)
	}

	encryptedScope, err := encrypt(scopeJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt actor scope: %w", err)
	}

	key := fmt.Sprintf("actorScope:%s", scope.UserID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, base64.StdEncoding.EncodeToString(encryptedScope), defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache actor scope: %w", err)
	}

	logger.Debug("Actor scope cached successfully", zap.String("userID", scope.UserID))
	return nil
}

func GetCachedActorScope(ctx context.Context, userID string) (*model.ActorScope, error) {
	key := fmt.Sprintf("actorScope:%s", userID)
	encryptedScopeStr, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Actor scope not found in cache", zap.String("userID", userID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get actor scope from cache: %w", err)
	}

	encryptedScope, err := base64.StdEncoding.DecodeString(encryptedScopeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode actor scope: %w", err)
	}

	scopeJSON, err := decrypt(encryptedScope)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt actor scope: %w", err)
	}

	var scope model.ActorScope
	err = json.Unmarshal(scopeJSON, &scope)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal actor scope: %w", err)
	}

	logger.Debug("Actor scope retrieved from cache", zap.String("userID", userID))
	return &scope, nil
}

func DeleteCachedActorScope(ctx context.Context, userID string) error {
	key := fmt.Sprintf("actorScope:%s", userID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete actor scope from cache: %w", err)
	}
	logger.Debug("Actor scope deleted from cache", zap.String("userID", userID))
	return nil
}

func CacheWorkflowDefinition(ctx context.Context, def *model.WorkflowDefinition) error {
	defJSON, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow definition: %w", err)
	}

	key := fmt.Sprintf("workflowDef:%s", def.RequestType)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, defJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache workflow definition: %w", err)
	}

	logger.Debug("Workflow definition cached successfully", zap.String("requestType", string(def.RequestType)))
	return nil
}

func GetCachedWorkflowDefinition(ctx context.Context, requestType model.RequestType) (*model.WorkflowDefinition, error) {
	key := fmt.Sprintf("workflowDef:%s", requestType)
	defJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Workflow definition not found in cache", zap.String("requestType", string(requestType)))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get workflow definition from cache: %w", err)
	}

	var def model.WorkflowDefinition
	err = json.Unmarshal([]byte(defJSON), &def)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow definition: %w", err)
	}

	logger.Debug("Workflow definition retrieved from cache", zap.String("requestType", string(requestType)))
	return &def, nil
}

func DeleteCachedWorkflowDefinition(ctx context.Context, requestType model.RequestType) error {
	key := fmt.Sprintf("workflowDef:%s", requestType)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete workflow definition from cache: %w", err)
	}
	logger.Debug("Workflow definition deleted from cache", zap.String("requestType", string(requestType)))
	return nil
}

func CacheEmployee(ctx context.Context, employee *model.Employee) error {
	employeeJSON, err := json.Marshal(employee)
	if err != nil {
		return fmt.Errorf("failed to marshal employee: %w", err)
	}

	key := fmt.Sprintf("employee:%s", employee.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, employeeJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache employee: %w", err)
	}

	logger.Debug("Employee cached successfully", zap.String("employeeID", employee.ID))
	return nil
}

func GetCachedEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	key := fmt.Sprintf("employee:%s", employeeID)
	employeeJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Employee not found in cache", zap.String("employeeID", employeeID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get employee from cache: %w", err)
	}

	var employee model.Employee
	err = json.Unmarshal([]byte(employeeJSON), &employee)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal employee: %w", err)
	}

	logger.Debug("Employee retrieved from cache", zap.String("employeeID", employeeID))
	return &employee, nil
}

func DeleteCachedEmployee(ctx context.Context, employeeID string) error {
	key := fmt.Sprintf("employee:%s", employeeID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete employee from cache: %w", err)
	}
	logger.Debug("Employee deleted from cache", zap.String("employeeID", employeeID))
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}

// LockResource serializes per-employee conflict validation so two requests
// for the same employee cannot both pass the overlap check concurrently.
func LockResource(ctx context.Context, resourceName string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:%s", resourceName)
	locked, err := RedisClient.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	logger.Debug("Lock acquisition attempt",
		zap.String("resource", resourceName),
		zap.Bool("locked", locked))
	return locked, nil
}

func UnlockResource(ctx context.Context, resourceName string) error {
	key := fmt.Sprintf("lock:%s", resourceName)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	logger.Debug("Lock released", zap.String("resource", resourceName))
	return nil
}
