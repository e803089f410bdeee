package settingsvc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/dal/platform"
	"github.com/spf13/cast"
)

const (
	KeyAPIKey                 = "marketing.service.api_key"
	KeyAPISecret              = "marketing.service.secret_key"
	KeyAPIURL                 = "marketing.service.api_url"
	KeySignupListEnabled      = "marketing.lists.enable_signup_list"
	KeySignupList             = "marketing.lists.signup_list"
	KeyNewsletterEnabled      = "marketing.lists.enable_newsletter"
	KeyNewsletterList         = "marketing.lists.newsletter_list"
	KeyAbandonedCartEnabled   = "marketing.send.abandoned_cart.enabled"
	KeyAbandonedCartTemplate  = "marketing.send.abandoned_cart.template"
	KeyAbandonedCartDelay     = "marketing.send.abandoned_cart.delay_time"
	KeyTransactionalsEnabled  = "marketing.send.transactionals.send_through_platform"
	KeyPurchaseEnabled        = "marketing.send.transactionals.purchase_enabled"
	KeyPurchaseTemplate       = "marketing.send.transactionals.purchase_template"
	KeyClientID               = "marketing.js.client_id"
	KeyPersonalizeEnabled     = "marketing.js.personalize_enabled"
	SuccessMessage            = "Successfully Validated!"
	InvalidCredentialsMessage = "Please Enter Valid Credentials"
)

type settings interface {
	Get(key string) any
}

type platformClient interface {
	GetSettings(ctx context.Context) (platform.Response, error)
}

// ClientFactory builds a platform client from credentials.
type ClientFactory func(apiKey, secret, baseURL string) (platformClient, error)

// Gateway reads integration settings and checks them against the platform.
type Gateway struct {
	settings  settings
	factory   ClientFactory
	client    platformClient
	clientErr error
}

type option func(*Gateway)

// MustNewGateway creates a Gateway and builds the platform client once.
func MustNewGateway(opts ...option) *Gateway {
	g := &Gateway{factory: defaultFactory}
	for _, opt := range opts {
		opt(g)
	}
	if g.settings == nil {
		panic("settings gateway requires a settings source")
	}

	g.initClient()

	return g
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithSettings(s settings) option {
	return func(g *Gateway) {
		g.settings = s
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithClientFactory(f ClientFactory) option {
	return func(g *Gateway) {
		g.factory = f
	}
}

func defaultFactory(apiKey, secret, baseURL string) (platformClient, error) {
	return platform.NewClient(apiKey, secret, baseURL)
}

func (g *Gateway) initClient() {
	key := g.stringValue(KeyAPIKey)
	secret := g.stringValue(KeyAPISecret)
	if key == "" || secret == "" {
		return
	}

	client, err := g.factory(key, secret, g.stringValue(KeyAPIURL))
	if err != nil {
		slog.Error("Failed to create platform client", "error", err)
		g.clientErr = err

		return
	}
	g.client = client
}

// Value returns the raw setting stored under key.
func (g *Gateway) Value(key string) any {
	return g.settings.Get(key)
}

func (g *Gateway) stringValue(key string) string {
	return strings.TrimSpace(cast.ToString(g.settings.Get(key)))
}

func (g *Gateway) boolValue(key string) bool {
	return cast.ToBool(g.settings.Get(key))
}

// Validate asks the platform for the account settings. It returns true and
// SuccessMessage when the credentials are accepted.
func (g *Gateway) Validate(ctx context.Context) (bool, string) {
	if g.client == nil {
		if g.clientErr != nil {
			return false, g.clientErr.Error()
		}

		return false, InvalidCredentialsMessage
	}

	resp, err := g.client.GetSettings(ctx)
	if err != nil {
		slog.Error("Failed to validate platform settings", "error", err)

		return false, err.Error()
	}
	if resp.HasError() {
		return false, resp.ErrorMessage()
	}

	return true, SuccessMessage
}

func (g *Gateway) IsValid(ctx context.Context) bool {
	ok, _ := g.Validate(ctx)

	return ok
}

// InvalidMessage is the text shown next to unusable credentials.
func (g *Gateway) InvalidMessage() string {
	return InvalidCredentialsMessage
}

func (g *Gateway) ClientID() string {
	return g.stringValue(KeyClientID)
}

func (g *Gateway) IsPersonalizeEnabled() bool {
	return g.boolValue(KeyPersonalizeEnabled)
}

func (g *Gateway) IsAbandonedCartEnabled() bool {
	return g.boolValue(KeyAbandonedCartEnabled)
}

func (g *Gateway) AbandonedCartTemplate() string {
	return g.stringValue(KeyAbandonedCartTemplate)
}

// AbandonedCartDelay converts the configured delay in minutes.
func (g *Gateway) AbandonedCartDelay() time.Duration {
	return time.Duration(cast.ToInt64(g.settings.Get(KeyAbandonedCartDelay))) * time.Minute
}

func (g *Gateway) TransactionalsEnabled() bool {
	return g.boolValue(KeyTransactionalsEnabled)
}

// OrderOverride returns the purchase template when transactional sending and
// purchase sending are both on and a template is configured.
func (g *Gateway) OrderOverride() (string, bool) {
	if !g.TransactionalsEnabled() || !g.boolValue(KeyPurchaseEnabled) {
		return "", false
	}
	template := g.stringValue(KeyPurchaseTemplate)
	if template == "" {
		return "", false
	}

	return template, true
}

func (g *Gateway) SignupList() (string, bool) {
	return g.list(KeySignupListEnabled, KeySignupList)
}

func (g *Gateway) NewsletterList() (string, bool) {
	return g.list(KeyNewsletterEnabled, KeyNewsletterList)
}

func (g *Gateway) list(enabledKey, listKey string) (string, bool) {
	if !g.boolValue(enabledKey) {
		return "", false
	}
	name := g.stringValue(listKey)

	return name, name != ""
}
