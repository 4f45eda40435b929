package main

import (
	"context"

	"qrdine/config"
	"qrdine/internal/service"
	"qrdine/internal/storage"
)

// board-svc tails the session lifecycle topic and keeps the live floor board
// in Redis. It runs alongside the API service and shares its consumer group,
// so multiple replicas divide the partitions between them.
func main() {
	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(config.SessionEventsTopic(), "floor-board")
	defer reader.Close()

	consumer := service.NewBoardConsumer(reader, storage.NewFloorBoard(rdb))
	consumer.Start(context.Background())
}
