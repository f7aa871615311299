package mailer

import "embed"

const (
	FromName             = "Basari"
	maxRetires           = 3
	RaffleWinnerTemplate = "raffle_winner.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
