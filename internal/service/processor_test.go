package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gmail-reaper/internal/ai"
	"gmail-reaper/internal/logger"
	"gmail-reaper/internal/model"
)

type fakeToolset struct {
	tools []ai.Tool
}

func (f *fakeToolset) Tools() []ai.Tool { return f.tools }

func (f *fakeToolset) Execute(ctx context.Context, name, arguments string) (string, error) {
	return "ok", nil
}

type fakeToolsetProvider struct {
	toolset ai.Toolset
	err     error
}

func (f *fakeToolsetProvider) ToolsetForUser(ctx context.Context, userID string) (ai.Toolset, error) {
	return f.toolset, f.err
}

type fakeRunner struct {
	reply        string
	err          error
	panicMsg     string
	instructions string
	systemPrompt string
	calls        int
}

func (f *fakeRunner) Run(ctx context.Context, systemPrompt, instructions string, toolset ai.Toolset) (string, error) {
	f.calls++
	f.systemPrompt = systemPrompt
	f.instructions = instructions
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.reply, f.err
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard)
}

func labelTools() []ai.Tool {
	return []ai.Tool{{Name: "GMAIL_LIST_LABELS"}}
}

func testMessage() *model.GmailMessage {
	return &model.GmailMessage{
		ConnectionID: "conn_1",
		UserID:       "user_1",
		ID:           "msg_1",
		ThreadID:     "thread_1",
		Sender:       "alice@example.com",
		Subject:      "Invoice",
		TextBody:     "Please pay the attached invoice.",
	}
}

func TestProcessSucceeds(t *testing.T) {
	runner := &fakeRunner{reply: "labeled"}
	p := NewProcessor(&fakeToolsetProvider{toolset: &fakeToolset{tools: labelTools()}}, runner, quietLogger())

	outcome := p.Process(context.Background(), testMessage(), "archive all invoices")

	assert.True(t, outcome.Succeeded)
	assert.Equal(t, "msg_1", outcome.MessageID)
	assert.Empty(t, outcome.Error)
	assert.Equal(t, 1, runner.calls)
}

func TestProcessComposesInstructions(t *testing.T) {
	runner := &fakeRunner{reply: "done"}
	p := NewProcessor(&fakeToolsetProvider{toolset: &fakeToolset{tools: labelTools()}}, runner, quietLogger())

	msg := testMessage()
	p.Process(context.Background(), msg, "archive all invoices")

	assert.Equal(t, ai.ReaperSystemPrompt, runner.systemPrompt)
	assert.True(t, strings.HasPrefix(runner.instructions, "archive all invoices"))
	assert.Contains(t, runner.instructions, "## Email\n"+msg.TextBody)
	assert.Contains(t, runner.instructions, "## Message ID\nmsg_1")
}

func TestProcessMissingIdentity(t *testing.T) {
	runner := &fakeRunner{}
	p := NewProcessor(&fakeToolsetProvider{toolset: &fakeToolset{tools: labelTools()}}, runner, quietLogger())

	noUser := testMessage()
	noUser.UserID = ""
	outcome := p.Process(context.Background(), noUser, "prompt")
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.Error, "user_id")

	noConn := testMessage()
	noConn.ConnectionID = ""
	outcome = p.Process(context.Background(), noConn, "prompt")
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.Error, "connection_id")

	// The agent never runs for rejected messages.
	assert.Equal(t, 0, runner.calls)
}

func TestProcessToolsetFailure(t *testing.T) {
	provider := &fakeToolsetProvider{err: errors.New("token expired")}
	p := NewProcessor(provider, &fakeRunner{}, quietLogger())

	outcome := p.Process(context.Background(), testMessage(), "prompt")
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.Error, "failed to acquire toolset")
}

func TestProcessEmptyToolset(t *testing.T) {
	p := NewProcessor(&fakeToolsetProvider{toolset: &fakeToolset{}}, &fakeRunner{}, quietLogger())

	outcome := p.Process(context.Background(), testMessage(), "prompt")
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.Error, "no tools available")
}

func TestProcessAgentFailure(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("rate limited")}
	p := NewProcessor(&fakeToolsetProvider{toolset: &fakeToolset{tools: labelTools()}}, runner, quietLogger())

	outcome := p.Process(context.Background(), testMessage(), "prompt")
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.Error, "agent execution failed")
}

func TestProcessRecoversFromPanic(t *testing.T) {
	runner := &fakeRunner{panicMsg: "boom"}
	p := NewProcessor(&fakeToolsetProvider{toolset: &fakeToolset{tools: labelTools()}}, runner, quietLogger())

	var outcome model.ProcessingOutcome
	assert.NotPanics(t, func() {
		outcome = p.Process(context.Background(), testMessage(), "prompt")
	})
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.Error, "panic")
}
