package scheduler

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"SmartWorth/internal/notifier"
	"SmartWorth/internal/service"
	"SmartWorth/internal/watchlist"
)

// Notifier delivers formatted messages.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks and chat commands.
type Scheduler struct {
	Cron         *cron.Cron
	Service      *service.Service
	Watchlist    *watchlist.Manager
	Notifier     Notifier
	SimilarLimit int
	Ctx          context.Context
}

// NewScheduler creates a new Scheduler. A nil notifier only logs messages.
func NewScheduler(ctx context.Context, svc *service.Service, wl *watchlist.Manager, n Notifier, similarLimit int) *Scheduler {
	if similarLimit <= 0 {
		similarLimit = 5
	}
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Service:      svc,
		Watchlist:    wl,
		Notifier:     n,
		SimilarLimit: similarLimit,
		Ctx:          ctx,
	}
}

// RegisterAll registers the watchlist refresh and digest tasks.
func (s *Scheduler) RegisterAll(refreshCron, digestCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if digestCron != "" {
		if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
			return fmt.Errorf("register digest task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	items := s.Watchlist.List()
	log.Printf("[INFO] running watchlist refresh for %d products", len(items))
	for _, it := range items {
		if s.Ctx.Err() != nil {
			return
		}
		res, err := s.Service.Analyze(s.Ctx, it.Name)
		if err != nil {
			log.Printf("[ERROR] refresh %q: %v", it.Name, err)
			continue
		}
		s.Watchlist.MarkAnalyzed(res)
		s.trySend(notifier.FormatAnalysisReport(res))
	}
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running watchlist digest")
	s.trySend(notifier.FormatWatchlist(s.Watchlist.List()))
}

const helpText = "Available commands:\n" +
	"• /analyze &lt;name&gt;\n" +
	"• /similar &lt;name&gt;\n" +
	"• /history &lt;name&gt;\n" +
	"• /track &lt;name&gt;\n" +
	"• /untrack &lt;name&gt;\n" +
	"• /watchlist\n" +
	"• /products"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	cmd, arg := splitCommand(command)
	switch cmd {
	case "/analyze":
		if arg == "" {
			return "Usage: /analyze &lt;name&gt;"
		}
		res, err := s.Service.Analyze(s.Ctx, arg)
		if err != nil {
			return "Analysis failed: " + html.EscapeString(err.Error())
		}
		s.Watchlist.MarkAnalyzed(res)
		return notifier.FormatAnalysisReport(res)
	case "/similar":
		matches, err := s.Service.Similar(arg, s.SimilarLimit)
		if err != nil {
			return "Lookup failed: " + html.EscapeString(err.Error())
		}
		return notifier.FormatSimilar(arg, matches)
	case "/history":
		entries, err := s.Service.History(arg, 20)
		if err != nil {
			return "Lookup failed: " + html.EscapeString(err.Error())
		}
		return notifier.FormatHistory(arg, entries)
	case "/track":
		added, err := s.Watchlist.Add(arg)
		switch {
		case err != nil:
			return "Could not save watchlist: " + html.EscapeString(err.Error())
		case !added:
			return "Not added: name is empty or already tracked."
		}
		return "Tracking " + html.EscapeString(arg)
	case "/untrack":
		removed, err := s.Watchlist.Remove(arg)
		switch {
		case err != nil:
			return "Could not save watchlist: " + html.EscapeString(err.Error())
		case !removed:
			return "Not tracked: " + html.EscapeString(arg)
		}
		return "Stopped tracking " + html.EscapeString(arg)
	case "/watchlist":
		return notifier.FormatWatchlist(s.Watchlist.List())
	case "/products":
		products, err := s.Service.Products()
		if err != nil {
			return "Lookup failed: " + html.EscapeString(err.Error())
		}
		return notifier.FormatProducts(products)
	default:
		return helpText
	}
}

// splitCommand separates "/cmd@bot argument text" into "/cmd" and the argument.
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	cmd, arg, _ := strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Printf("[INFO] notification (no notifier configured):\n%s", text)
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
