package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"basari/internal/domain/pushtokens"
	"basari/internal/domain/raffles"
	"basari/internal/domain/users"
	"basari/internal/mailer"

	"github.com/9ssi7/exponent"
)

var ErrNoPushTokens = errors.New("no push tokens")

// RaffleNotifier tells users about new tickets and raffle wins. Mail is
// optional; without it winners are only pushed.
type RaffleNotifier struct {
	push   PushSender
	tokens pushtokens.Store
	mail   mailer.Client
}

func NewRaffleNotifier(push PushSender, tokens pushtokens.Store, mail mailer.Client) *RaffleNotifier {
	return &RaffleNotifier{push: push, tokens: tokens, mail: mail}
}

func (n *RaffleNotifier) TicketIssued(ctx context.Context, raffle *raffles.Raffle, entry *raffles.Entry) error {
	title := "קיבלת כרטיס להגרלה 🎟️"
	body := fmt.Sprintf("כרטיס %s בהגרלה \"%s\". בהצלחה!", entry.Code, raffle.Title)
	err := n.sendPush(ctx, entry.UserID, title, body, map[string]string{
		"type":      "raffle_ticket",
		"raffle_id": strconv.FormatInt(raffle.ID, 10),
		"code":      entry.Code,
		"screen":    "raffles/tickets",
	})
	if errors.Is(err, ErrNoPushTokens) {
		return nil
	}
	return err
}

func (n *RaffleNotifier) RaffleWon(ctx context.Context, winner *users.User, raffle *raffles.Raffle, entry *raffles.Entry) error {
	title := "זכית בהגרלה! 🎉"
	body := fmt.Sprintf("הכרטיס %s זכה ב%s", entry.Code, raffle.Prize)
	pushErr := n.sendPush(ctx, winner.ID, title, body, map[string]string{
		"type":      "raffle_won",
		"raffle_id": strconv.FormatInt(raffle.ID, 10),
		"code":      entry.Code,
		"screen":    fmt.Sprintf("raffles/%d", raffle.ID),
	})
	if errors.Is(pushErr, ErrNoPushTokens) {
		pushErr = nil
	}

	var mailErr error
	if n.mail != nil && winner.Email != "" {
		vars := struct {
			Username    string
			RaffleTitle string
			Prize       string
			TicketCode  string
		}{winner.DisplayName, raffle.Title, raffle.Prize, entry.Code}
		_, mailErr = n.mail.Send(mailer.RaffleWinnerTemplate, winner.DisplayName, winner.Email, vars)
	}
	return errors.Join(pushErr, mailErr)
}

func (n *RaffleNotifier) sendPush(ctx context.Context, userID int64, title, body string, data map[string]string) error {
	tokensMap, err := n.tokens.GetTokensByUserIDs(ctx, []int64{userID})
	if err != nil {
		return err
	}
	tokens := dedupe(tokensMap[userID])
	if len(tokens) == 0 {
		return ErrNoPushTokens
	}

	msgs := make([]*exponent.Message, 0, len(tokens))
	for _, t := range tokens {
		//wrap the string token in exponent.Token to satisfy the type
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data:  data,
		})
	}
	_, err = n.push.Publish(ctx, msgs)
	return err
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
