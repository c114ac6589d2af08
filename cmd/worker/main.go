package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suPer8Hu/krishi-mitra/internal/app"
	"github.com/suPer8Hu/krishi-mitra/internal/chat"
	"github.com/suPer8Hu/krishi-mitra/internal/config"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/store/rabbitmq"
)

const maxAttempts = 3

func workerConcurrency(n int) int {
	if n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func retryDelay(attempt int) time.Duration {
	return time.Duration(attempt*attempt) * 5 * time.Second
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log = log.With("component", "worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", "error", err)
	}
	defer a.Close()

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatal("rabbit dial", "error", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("rabbit channel", "error", err)
	}
	defer ch.Close()

	queues := rabbitmq.QueuesFor(cfg.RabbitQueue)
	if err := rabbitmq.Declare(ch, queues); err != nil {
		log.Fatal("queue declare", "error", err)
	}

	pubCh, err := conn.Channel()
	if err != nil {
		log.Fatal("rabbit publish channel", "error", err)
	}
	retries := rabbitmq.NewPublisherOnChannel(pubCh, cfg.RabbitQueue)
	defer retries.Close()

	//  strict concurrency control
	concurrency := workerConcurrency(cfg.WorkerConcurrency)
	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatal("qos", "error", err)
	}

	msgs, err := ch.Consume(queues.Main, "", false, false, false, false, nil)
	if err != nil {
		log.Fatal("consume", "error", err)
	}

	log.Info("worker started", "queue", queues.Main, "concurrency", concurrency)

	// worker pool
	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				handleDelivery(ctx, a.Chat, retries, log.With("worker", workerID), d)
			}
		}(i)
	}

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			log.Info("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Error("delivery channel closed")
				close(jobs)
				wg.Wait()
				return
			}
			jobs <- d
		}
	}
}

// handleDelivery runs one job. Failures are parked in the retry queue until
// maxAttempts; after that the job is marked failed and the message goes to
// the DLQ.
func handleDelivery(ctx context.Context, svc *chat.Service, retries *rabbitmq.Publisher, log *logger.Logger, d amqp.Delivery) {
	var m rabbitmq.JobMessage
	if err := json.Unmarshal(d.Body, &m); err != nil || m.JobID == "" {
		log.Warn("bad message", "error", err)
		_ = d.Nack(false, false)
		return
	}

	attempt := rabbitmq.Attempt(d)
	start := time.Now()
	err := svc.RunJob(ctx, m.JobID)
	if err == nil {
		if time.Since(start) > 2*time.Second {
			log.Info("job_timing", "job_id", m.JobID, "attempt", attempt, "total", time.Since(start))
		}
		if err := d.Ack(false); err != nil {
			log.Error("ack failed", "job_id", m.JobID, "error", err)
		}
		return
	}

	if errors.Is(err, chat.ErrNotFound) {
		log.Warn("job not found, dropping", "job_id", m.JobID)
		_ = d.Nack(false, false)
		return
	}

	if attempt < maxAttempts {
		delay := retryDelay(attempt)
		perr := retries.Retry(ctx, m.JobID, attempt+1, delay)
		if perr == nil {
			log.Warn("job failed, retry scheduled", "job_id", m.JobID, "attempt", attempt, "delay", delay, "error", err)
			_ = d.Ack(false)
			return
		}
		log.Error("retry publish failed", "job_id", m.JobID, "error", perr)
	}

	log.Error("job failed", "job_id", m.JobID, "attempt", attempt, "cost", time.Since(start), "error", err)
	if ferr := svc.FailJob(context.Background(), m.JobID, err); ferr != nil {
		log.Error("mark job failed", "job_id", m.JobID, "error", ferr)
	}
	_ = d.Nack(false, false)
}
