package initializers

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

func ConnectToRedis(addr, password string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to redis: ", err)
	}

	log.Println("Connected to redis successfully.")
	return client
}
