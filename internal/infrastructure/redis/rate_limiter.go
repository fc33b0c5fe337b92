package redis

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RateLimiter contador de ventana fija sobre Redis. Al ser compartido, el
// límite se sostiene aunque el servicio corra en varias instancias (un
// contador en memoria por proceso no limita nada en ese despliegue).
type RateLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewRateLimiter construye el limitador. max peticiones por ventana de windowSeconds.
func NewRateLimiter(addr, password string, db, max, windowSeconds int) *RateLimiter {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RateLimiter{
		client: client,
		max:    max,
		window: time.Duration(windowSeconds) * time.Second,
	}
}

// Ping verifica la conexión con Redis.
func (l *RateLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close cierra la conexión.
func (l *RateLimiter) Close() error {
	return l.client.Close()
}

// Allow incrementa el contador de la ventana actual para la clave (típicamente
// la IP del cliente) y devuelve true si la petición está dentro del límite.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowID := time.Now().Unix() / int64(l.window.Seconds())
	counterKey := fmt.Sprintf("ratelimit:%s:%d", key, windowID)

	n, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("incrementar contador: %w", err)
	}
	if n == 1 {
		// Primera petición de la ventana: fijar expiración para no acumular claves.
		l.client.Expire(ctx, counterKey, l.window+time.Second)
	}
	return n <= int64(l.max), nil
}
