package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chatdeck/internal/models"
)

var errBackend = errors.New("backend down")

type fakeBackend struct {
	mu sync.Mutex

	agents        []models.Agent
	conversations []models.ConversationSummary
	details       map[int64]*models.ConversationDetail
	reply         *models.ChatResponse

	agentsErr  error
	convsErr   error
	detailErr  error
	sendErr    error
	sent       []models.ChatRequest
	fetched    []int64
	agentCalls int
	convCalls  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		agents: []models.Agent{
			{ID: 1, DisplayName: "Sage", Description: "Wise"},
			{ID: 2, DisplayName: "Scout"},
		},
		conversations: []models.ConversationSummary{{ID: 42, MessageCount: 4}},
		details:       map[int64]*models.ConversationDetail{},
		reply:         &models.ChatResponse{Response: "hello there"},
	}
}

func (f *fakeBackend) ListAgents(ctx context.Context) ([]models.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.agentCalls++
	if f.agentsErr != nil {
		return nil, f.agentsErr
	}
	return f.agents, nil
}

func (f *fakeBackend) ListConversations(ctx context.Context) ([]models.ConversationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.convCalls++
	if f.convsErr != nil {
		return nil, f.convsErr
	}
	return f.conversations, nil
}

func (f *fakeBackend) GetConversation(ctx context.Context, id int64) (*models.ConversationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, id)
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d, ok := f.details[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return d, nil
}

func (f *fakeBackend) SendChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.reply, nil
}

type fakePrefs struct {
	theme     string
	developer bool
	writes    int
}

func (p *fakePrefs) Theme() (string, error) {
	if p.theme == "" {
		return ThemeLight, nil
	}
	return p.theme, nil
}

func (p *fakePrefs) SetTheme(theme string) error {
	p.theme = theme
	p.writes++
	return nil
}

func (p *fakePrefs) DeveloperMode() (bool, error) {
	return p.developer, nil
}

func (p *fakePrefs) SetDeveloperMode(enabled bool) error {
	p.developer = enabled
	p.writes++
	return nil
}

const testSecret = "mellon"

func newTestController(b *fakeBackend, p *fakePrefs) *Controller {
	return New(b, p, WithGate(SecretGate{Secret: testSecret}))
}

// drain runs immediate jobs, including any they queue, until none remain.
// Timer jobs are returned unrun, in queue order.
func drain(t *testing.T, c *Controller) []Job {
	t.Helper()
	var timers []Job
	for i := 0; i < 100; i++ {
		jobs := c.TakeJobs()
		if len(jobs) == 0 {
			return timers
		}
		for _, job := range jobs {
			if job.Delay > 0 {
				timers = append(timers, job)
				continue
			}
			job.Run()()
		}
	}
	t.Fatal("jobs did not settle")
	return nil
}

// fire runs timer jobs as if their delays had elapsed.
func fire(timers []Job) {
	for _, job := range timers {
		job.Run()()
	}
}

func startedWithAgent(t *testing.T, b *fakeBackend, p *fakePrefs) *Controller {
	t.Helper()
	c := newTestController(b, p)
	c.Start("/")
	drain(t, c)
	if err := c.SelectAgent(c.Agents()[0]); err != nil {
		t.Fatalf("select agent: %v", err)
	}
	drain(t, c)
	return c
}
