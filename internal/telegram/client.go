package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/frahmantamala/expense-bot/internal"
)

const DefaultAPIURL = "https://api.telegram.org"

var (
	ErrQueueFull = errors.New("telegram send queue full")
	ErrShutdown  = errors.New("telegram client shut down")
)

type MessageJob struct {
	ChatID int64
	Text   string
}

type Worker struct {
	ID         int
	WorkerPool chan chan MessageJob
	JobChannel chan MessageJob
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan MessageJob, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan MessageJob),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(MessageJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-ctx.Done():
				return
			}

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker delivering message", "worker_id", w.ID, "chat_id", job.ChatID)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

type Config struct {
	APIURL        string
	Token         string
	SendTimeout   time.Duration
	MaxWorkers    int
	QueueSize     int
	MaxRetries    int
	RetryInterval time.Duration
	HTTPClient    *http.Client
}

// Client talks to the Telegram Bot API. Outgoing messages are queued and
// delivered by a fixed pool of workers; webhook registration is synchronous.
type Client struct {
	apiURL        string
	token         string
	sendTimeout   time.Duration
	maxRetries    int
	retryInterval time.Duration
	httpClient    *http.Client
	logger        *slog.Logger

	jobQueue   chan MessageJob
	workerPool chan chan MessageJob
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewClient(config Config, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	apiURL := strings.TrimRight(config.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}

	sendTimeout := config.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}

	retryInterval := config.RetryInterval
	if retryInterval <= 0 {
		retryInterval = 500 * time.Millisecond
	}

	maxRetries := config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	client := &Client{
		apiURL:        apiURL,
		token:         config.Token,
		sendTimeout:   sendTimeout,
		maxRetries:    maxRetries,
		retryInterval: retryInterval,
		httpClient:    httpClient,
		logger:        logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan MessageJob, queueSize),
		workerPool: make(chan chan MessageJob, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	client.startWorkerPool()

	return client
}

func (c *Client) startWorkerPool() {
	c.once.Do(func() {
		for i := 0; i < c.maxWorkers; i++ {
			worker := NewWorker(i, c.workerPool, c.logger)
			worker.Start(c.ctx, &c.wg, c.processMessageJob)
		}

		c.wg.Add(1)
		go c.dispatch()

		c.logger.Info("telegram worker pool started",
			"max_workers", c.maxWorkers,
			"queue_size", cap(c.jobQueue))
	})
}

func (c *Client) dispatch() {
	defer c.wg.Done()

	for {
		select {
		case job := <-c.jobQueue:
			select {
			case jobChannel := <-c.workerPool:
				select {
				case jobChannel <- job:
				case <-c.ctx.Done():
					c.logger.Info("dispatcher shutting down")
					return
				}
			case <-c.ctx.Done():
				c.logger.Info("dispatcher shutting down")
				return
			}
		case <-c.ctx.Done():
			c.logger.Info("dispatcher shutting down")
			return
		}
	}
}

// Shutdown stops the workers. Messages still queued are dropped.
func (c *Client) Shutdown() {
	c.logger.Info("shutting down telegram client", "pending", len(c.jobQueue))
	c.cancel()
	c.wg.Wait()
	c.logger.Info("telegram client shutdown complete")
}

// SendMessage queues text for chatID. It only fails when the queue is full
// or the client is shutting down; delivery errors are logged by the worker.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	if c.ctx.Err() != nil {
		return internal.NewExternalError("telegram client is shut down", internal.ErrCodeDeliveryFailed, ErrShutdown)
	}

	job := MessageJob{ChatID: chatID, Text: text}

	select {
	case c.jobQueue <- job:
		c.logger.Debug("message queued", "chat_id", chatID, "queue_length", len(c.jobQueue))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		c.logger.Warn("telegram queue full, dropping message",
			"chat_id", chatID,
			"queue_capacity", cap(c.jobQueue))
		return internal.NewExternalError("message queue full, please try again later", internal.ErrCodeDeliveryFailed, ErrQueueFull)
	}
}

func (c *Client) processMessageJob(job MessageJob) {
	if err := c.Deliver(c.ctx, job.ChatID, job.Text); err != nil {
		c.logger.Error("failed to deliver telegram message",
			"chat_id", job.ChatID,
			"error", err)
		return
	}
	c.logger.Info("telegram message delivered", "chat_id", job.ChatID)
}

// Deliver sends text synchronously, retrying transient failures with
// exponential backoff. 4xx answers other than 429 are not retried.
func (c *Client) Deliver(ctx context.Context, chatID int64, text string) error {
	return c.call(ctx, "sendMessage", sendMessageRequest{ChatID: chatID, Text: text})
}

// SetWebhook registers url with Telegram. secret, when set, is echoed back by
// Telegram in the X-Telegram-Bot-Api-Secret-Token header of every update.
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	return c.call(ctx, "setWebhook", setWebhookRequest{URL: url, SecretToken: secret})
}

func (c *Client) call(ctx context.Context, method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	retry := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx)

	attempt := 0
	operation := func() error {
		attempt++
		err := c.post(ctx, method, body)
		if err != nil {
			c.logger.Warn("telegram call failed",
				"method", method,
				"attempt", attempt,
				"error", err)
		}
		return err
	}

	if err := backoff.Retry(operation, retry); err != nil {
		return internal.NewExternalError(fmt.Sprintf("telegram %s failed", method), internal.ErrCodeDeliveryFailed, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, method string, body []byte) error {
	reqCtx, cancel := internal.WithTimeout(ctx, c.sendTimeout)
	defer cancel()

	// the token is part of the path; never log this URL
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", redactToken(err, c.token))
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var envelope apiResponse
	_ = json.Unmarshal(raw, &envelope)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && (envelope.OK || len(raw) == 0) {
		return nil
	}

	statusErr := fmt.Errorf("unexpected status %d: %s", resp.StatusCode, envelope.Description)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return backoff.Permanent(statusErr)
	}
	return statusErr
}

func redactToken(err error, token string) error {
	if token == "" {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "<redacted>"))
}
