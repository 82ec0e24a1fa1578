package entity

import (
	"fmt"
	"net/url"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

type ChannelKind string

const (
	ChannelTelegram   ChannelKind = "telegram"
	ChannelPushPlus   ChannelKind = "pushplus"
	ChannelServerChan ChannelKind = "serverchan"
	ChannelPushDeer   ChannelKind = "pushdeer"
	ChannelWeCom      ChannelKind = "wecom"
	ChannelSynology   ChannelKind = "synology"
	ChannelGitHub     ChannelKind = "github"
	ChannelSFTP       ChannelKind = "sftp"
)

// MessageKinds are the channels that receive the rendered summary text.
var MessageKinds = []ChannelKind{
	ChannelTelegram, ChannelPushPlus, ChannelServerChan,
	ChannelPushDeer, ChannelWeCom, ChannelSynology,
}

// ParseChannelKind maps a group channel name to its kind.
func ParseChannelKind(name string) (ChannelKind, error) {
	k := ChannelKind(name)
	switch k {
	case ChannelTelegram, ChannelPushPlus, ChannelServerChan, ChannelPushDeer,
		ChannelWeCom, ChannelSynology, ChannelGitHub, ChannelSFTP:
		return k, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnknownChannel, name)
}

// IsList reports whether the kind routes assignments to a list publisher.
func (k ChannelKind) IsList() bool {
	return k == ChannelGitHub || k == ChannelSFTP
}

// Channel is one push target. Only the fields of its kind are read.
type Channel struct {
	Kind ChannelKind `yaml:"kind"`
	Name string      `yaml:"name,omitempty"`

	// telegram
	BotToken valueobject.SecretRef `yaml:"bot_token,omitempty"`
	ChatID   string                `yaml:"chat_id,omitempty"`

	// pushplus
	Token valueobject.SecretRef `yaml:"token,omitempty"`

	// serverchan
	SendKey valueobject.SecretRef `yaml:"send_key,omitempty"`

	// pushdeer
	PushKey valueobject.SecretRef `yaml:"push_key,omitempty"`

	// wecom
	CorpID     string                `yaml:"corp_id,omitempty"`
	CorpSecret valueobject.SecretRef `yaml:"corp_secret,omitempty"`
	AgentID    string                `yaml:"agent_id,omitempty"`
	ToUser     string                `yaml:"to_user,omitempty"`

	// synology
	WebhookURL valueobject.SecretRef `yaml:"webhook_url,omitempty"`
}

func (c *Channel) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return string(c.Kind)
}

func (c *Channel) Validate() error {
	required := func(field string, ref valueobject.SecretRef) error {
		if ref.IsZero() {
			return domain.RequiredField(field)
		}
		return nil
	}

	switch c.Kind {
	case ChannelTelegram:
		if c.ChatID == "" {
			return domain.RequiredField("chat_id")
		}
		return required("bot_token", c.BotToken)
	case ChannelPushPlus:
		return required("token", c.Token)
	case ChannelServerChan:
		return required("send_key", c.SendKey)
	case ChannelPushDeer:
		return required("push_key", c.PushKey)
	case ChannelWeCom:
		if c.CorpID == "" {
			return domain.RequiredField("corp_id")
		}
		if c.AgentID == "" {
			return domain.RequiredField("agent_id")
		}
		return required("corp_secret", c.CorpSecret)
	case ChannelSynology:
		if err := required("webhook_url", c.WebhookURL); err != nil {
			return err
		}
		if c.WebhookURL.Plain != "" {
			if _, err := url.ParseRequestURI(c.WebhookURL.Plain); err != nil {
				return fmt.Errorf("%w: webhook_url", domain.ErrInvalidURL)
			}
		}
		return nil
	case ChannelGitHub, ChannelSFTP:
		return fmt.Errorf("%w: %s is configured under list_publishers", domain.ErrInvalidType, c.Kind)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownChannel, c.Kind)
	}
}

// WeComUser returns the recipient, defaulting to every member.
func (c *Channel) WeComUser() string {
	if c.ToUser == "" {
		return "@all"
	}
	return c.ToUser
}
