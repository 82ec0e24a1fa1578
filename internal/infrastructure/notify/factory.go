package notify

import (
	"fmt"
	"net/http"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

// ResolveFunc turns a secret reference into its value.
type ResolveFunc func(valueobject.SecretRef) (string, error)

type Factory struct {
	resolve ResolveFunc
	client  *http.Client
}

func NewFactory(resolve ResolveFunc, hc *http.Client) *Factory {
	return &Factory{resolve: resolve, client: hc}
}

// Create builds the sender for one configured push target.
func (f *Factory) Create(ch *entity.Channel) (contract.Sender, error) {
	secret := func(field string, ref valueobject.SecretRef) (string, error) {
		v, err := f.resolve(ref)
		if err != nil {
			return "", domain.WrapEntity("push", ch.Label(), fmt.Errorf("%s: %w", field, err))
		}
		return v, nil
	}

	name := ch.Label()
	switch ch.Kind {
	case entity.ChannelTelegram:
		token, err := secret("bot_token", ch.BotToken)
		if err != nil {
			return nil, err
		}
		return NewTelegram(name, token, ch.ChatID, f.client), nil
	case entity.ChannelPushPlus:
		token, err := secret("token", ch.Token)
		if err != nil {
			return nil, err
		}
		return NewPushPlus(name, token, f.client), nil
	case entity.ChannelServerChan:
		key, err := secret("send_key", ch.SendKey)
		if err != nil {
			return nil, err
		}
		return NewServerChan(name, key, f.client), nil
	case entity.ChannelPushDeer:
		key, err := secret("push_key", ch.PushKey)
		if err != nil {
			return nil, err
		}
		return NewPushDeer(name, key, f.client), nil
	case entity.ChannelWeCom:
		corpSecret, err := secret("corp_secret", ch.CorpSecret)
		if err != nil {
			return nil, err
		}
		return NewWeCom(name, ch.CorpID, corpSecret, ch.AgentID, ch.WeComUser(), f.client), nil
	case entity.ChannelSynology:
		webhook, err := secret("webhook_url", ch.WebhookURL)
		if err != nil {
			return nil, err
		}
		return NewSynology(name, webhook, f.client), nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownChannel, ch.Kind)
}
