package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lite-lake/ipsync/internal/domain"
)

const (
	TelegramAPI   = "https://api.telegram.org"
	PushPlusAPI   = "http://www.pushplus.plus/send"
	ServerChanAPI = "https://sctapi.ftqq.com"
	PushDeerAPI   = "https://api2.pushdeer.com/message/push"
	WeComAPI      = "https://qyapi.weixin.qq.com"
)

// Telegram sends through the Bot API client. BaseURL may point at a
// self-hosted Bot API server.
type Telegram struct {
	name    string
	http    *http.Client
	BaseURL string
	token   string
	chatID  string
}

func NewTelegram(name, token, chatID string, hc *http.Client) *Telegram {
	return &Telegram{name: name, http: newClient(hc).http, BaseURL: TelegramAPI, token: token, chatID: chatID}
}

func (s *Telegram) Name() string { return s.name }

func (s *Telegram) Send(ctx context.Context, _ string, text string) error {
	bot := &tgbotapi.BotAPI{Token: s.token, Client: boundClient{ctx: ctx, http: s.http}}
	bot.SetAPIEndpoint(strings.TrimSuffix(s.BaseURL, "/") + "/bot%s/%s")

	msg := tgbotapi.NewMessageToChannel(s.chatID, text)
	if id, err := strconv.ParseInt(s.chatID, 10, 64); err == nil {
		msg = tgbotapi.NewMessage(id, text)
	}
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := bot.Request(msg); err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: %d %s", domain.ErrChannelRejected, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

type PushPlus struct {
	name     string
	client   client
	Endpoint string
	token    string
}

func NewPushPlus(name, token string, hc *http.Client) *PushPlus {
	return &PushPlus{name: name, client: newClient(hc), Endpoint: PushPlusAPI, token: token}
}

func (s *PushPlus) Name() string { return s.name }

func (s *PushPlus) Send(ctx context.Context, title, text string) error {
	var resp codeResponse
	payload := map[string]string{"token": s.token, "title": title, "content": text, "template": "html"}
	if err := s.client.postJSON(ctx, s.Endpoint, payload, &resp); err != nil {
		return err
	}
	return resp.expect(200)
}

type ServerChan struct {
	name    string
	client  client
	BaseURL string
	sendKey string
}

func NewServerChan(name, sendKey string, hc *http.Client) *ServerChan {
	return &ServerChan{name: name, client: newClient(hc), BaseURL: ServerChanAPI, sendKey: sendKey}
}

func (s *ServerChan) Name() string { return s.name }

func (s *ServerChan) Send(ctx context.Context, title, text string) error {
	var resp codeResponse
	form := url.Values{"title": {title}, "desp": {text}}
	if err := s.client.postForm(ctx, s.BaseURL+"/"+s.sendKey+".send", form, &resp); err != nil {
		return err
	}
	return resp.expect(0)
}

type PushDeer struct {
	name     string
	client   client
	Endpoint string
	pushKey  string
}

func NewPushDeer(name, pushKey string, hc *http.Client) *PushDeer {
	return &PushDeer{name: name, client: newClient(hc), Endpoint: PushDeerAPI, pushKey: pushKey}
}

func (s *PushDeer) Name() string { return s.name }

func (s *PushDeer) Send(ctx context.Context, title, text string) error {
	var resp codeResponse
	form := url.Values{"pushkey": {s.pushKey}, "text": {title}, "desp": {text}}
	if err := s.client.postForm(ctx, s.Endpoint, form, &resp); err != nil {
		return err
	}
	return resp.expect(0)
}

// WeCom sends an application text message. Every send fetches a fresh
// access token.
type WeCom struct {
	name       string
	client     client
	BaseURL    string
	corpID     string
	corpSecret string
	agentID    string
	toUser     string
}

func NewWeCom(name, corpID, corpSecret, agentID, toUser string, hc *http.Client) *WeCom {
	return &WeCom{name: name, client: newClient(hc), BaseURL: WeComAPI, corpID: corpID, corpSecret: corpSecret, agentID: agentID, toUser: toUser}
}

func (s *WeCom) Name() string { return s.name }

func (s *WeCom) Send(ctx context.Context, _ string, text string) error {
	var token struct {
		ErrCode     int    `json:"errcode"`
		ErrMsg      string `json:"errmsg"`
		AccessToken string `json:"access_token"`
	}
	q := url.Values{"corpid": {s.corpID}, "corpsecret": {s.corpSecret}}
	if err := s.client.get(ctx, s.BaseURL+"/cgi-bin/gettoken?"+q.Encode(), &token); err != nil {
		return fmt.Errorf("get token: %w", err)
	}
	if token.ErrCode != 0 {
		return fmt.Errorf("%w: get token: %d %s", domain.ErrChannelRejected, token.ErrCode, token.ErrMsg)
	}

	var agent any = s.agentID
	if n, err := strconv.Atoi(s.agentID); err == nil {
		agent = n
	}
	payload := map[string]any{
		"touser":  s.toUser,
		"msgtype": "text",
		"agentid": agent,
		"text":    map[string]string{"content": text},
	}
	var resp struct {
		ErrCode int    `json:"errcode"`
		ErrMsg  string `json:"errmsg"`
	}
	send := s.BaseURL + "/cgi-bin/message/send?" + url.Values{"access_token": {token.AccessToken}}.Encode()
	if err := s.client.postJSON(ctx, send, payload, &resp); err != nil {
		return err
	}
	if resp.ErrCode != 0 {
		return fmt.Errorf("%w: %d %s", domain.ErrChannelRejected, resp.ErrCode, resp.ErrMsg)
	}
	return nil
}

type Synology struct {
	name    string
	client  client
	webhook string
}

func NewSynology(name, webhook string, hc *http.Client) *Synology {
	return &Synology{name: name, client: newClient(hc), webhook: webhook}
}

func (s *Synology) Name() string { return s.name }

func (s *Synology) Send(ctx context.Context, _ string, text string) error {
	var resp struct {
		Success bool `json:"success"`
	}
	if err := s.client.postJSON(ctx, s.webhook, map[string]string{"text": text}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%w: success=false", domain.ErrChannelRejected)
	}
	return nil
}

type codeResponse struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (r codeResponse) expect(code int) error {
	if r.Code == code {
		return nil
	}
	msg := r.Msg
	if msg == "" {
		msg = r.Message
	}
	return fmt.Errorf("%w: code %d %s", domain.ErrChannelRejected, r.Code, msg)
}
