// Package agent provides an AI analyst that comments on trading performance.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-pro"

const systemPrompt = `You are a trading performance analyst.
You are given a trading journal summary in markdown: account balances, realized
and unrealized profit, win rate, Sharpe ratio, growth percentages and an
equity curve. Comment on the account's performance over the period: what went
well, what the risk picture looks like, and what the trader should watch.
Be concrete and concise. Never invent numbers that are not in the summary.
Answer in markdown.`

// Analyst is a one-shot AI commentator over a performance report.
type Analyst struct {
	ModelName string
	chat      *genai.Chat
}

// NewAnalyst creates an analyst on the default model.
func NewAnalyst() *Analyst {
	return &Analyst{ModelName: defaultModel}
}

// Start initializes the chat session.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}
	chat, err := client.Chats.Create(ctx, a.ModelName, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Comment sends a markdown report to the analyst and returns its commentary,
// in markdown.
func (a *Analyst) Comment(ctx context.Context, report string, question string) (string, error) {
	if a.chat == nil {
		return "", fmt.Errorf("analyst not started")
	}
	parts := []*genai.Part{{Text: report}}
	if question != "" {
		parts = append(parts, &genai.Part{Text: question})
	}
	resp, err := a.chat.Send(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from analyst")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
