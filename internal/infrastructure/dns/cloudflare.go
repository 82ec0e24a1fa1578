package dns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cloudflare/cloudflare-go/v2"
	"github.com/cloudflare/cloudflare-go/v2/dns"
	"github.com/cloudflare/cloudflare-go/v2/option"
	"github.com/cloudflare/cloudflare-go/v2/zones"
	domainerr "github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
)

// cloudflareRecordExists is the API error code for an identical record.
const cloudflareRecordExists = 81057

type CloudflareProvider struct {
	client *cloudflare.Client
	zoneID string
}

// NewCloudflareProvider authenticates with the global API key. Extra options
// are appended after the defaults.
func NewCloudflareProvider(email, apiKey, zoneID string, opts ...option.RequestOption) *CloudflareProvider {
	base := []option.RequestOption{
		option.WithAPIEmail(email),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: domainerr.CredentialTimeout}),
	}
	client := cloudflare.NewClient(append(base, opts...)...)
	return &CloudflareProvider{client: client, zoneID: zoneID}
}

func (p *CloudflareProvider) Name() string {
	return "cloudflare"
}

func (p *CloudflareProvider) VerifyZone(ctx context.Context) error {
	zone, err := p.client.Zones.Get(ctx, zones.ZoneGetParams{
		ZoneID: cloudflare.F(p.zoneID),
	})
	if err != nil {
		return domainerr.WrapOp("get zone", err)
	}
	logger.FromContext(ctx).Debug("zone verified", "provider", "cloudflare", "zone", zone.Name)
	return nil
}

func (p *CloudflareProvider) ListRecords(ctx context.Context, name string, recordType valueobject.RecordType) ([]valueobject.Record, error) {
	var records []valueobject.Record
	pager := p.client.DNS.Records.ListAutoPaging(ctx, dns.RecordListParams{
		ZoneID: cloudflare.F(p.zoneID),
		Name:   cloudflare.F(name),
		Type:   cloudflare.F(dns.RecordListParamsType(recordType)),
	})
	for pager.Next() {
		record := pager.Current()
		content := ""
		if str, ok := record.Content.(string); ok {
			content = str
		}
		records = append(records, valueobject.Record{
			ID:      record.ID,
			Type:    valueobject.RecordType(record.Type),
			Name:    record.Name,
			Content: content,
		})
	}
	if err := pager.Err(); err != nil {
		return nil, domainerr.WrapOp("list records", err)
	}
	return records, nil
}

func (p *CloudflareProvider) CreateRecord(ctx context.Context, record valueobject.Record) error {
	_, err := p.client.DNS.Records.New(ctx, dns.RecordNewParams{
		ZoneID: cloudflare.F(p.zoneID),
		Record: buildRecordParam(record),
	})
	if err != nil {
		if isCloudflareDuplicate(err) {
			return fmt.Errorf("%w: %s %s %s", domainerr.ErrRecordExists, record.Type, record.Name, record.Content)
		}
		return domainerr.WrapOp("create record", err)
	}
	return nil
}

func buildRecordParam(record valueobject.Record) dns.RecordUnionParam {
	if record.Type == valueobject.RecordTypeAAAA {
		return dns.AAAARecordParam{
			Name:    cloudflare.F(record.Name),
			Type:    cloudflare.F(dns.AAAARecordTypeAAAA),
			Content: cloudflare.F(record.Content),
			Proxied: cloudflare.F(false),
			TTL:     cloudflare.F(dns.TTL(1)),
		}
	}
	return dns.ARecordParam{
		Name:    cloudflare.F(record.Name),
		Type:    cloudflare.F(dns.ARecordTypeA),
		Content: cloudflare.F(record.Content),
		Proxied: cloudflare.F(false),
		TTL:     cloudflare.F(dns.TTL(1)),
	}
}

func (p *CloudflareProvider) DeleteRecord(ctx context.Context, record valueobject.Record) error {
	_, err := p.client.DNS.Records.Delete(ctx, record.ID, dns.RecordDeleteParams{
		ZoneID: cloudflare.F(p.zoneID),
	})
	if err != nil {
		return domainerr.WrapOp("delete record", err)
	}
	return nil
}

func isCloudflareDuplicate(err error) bool {
	var apiErr *cloudflare.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, e := range apiErr.Errors {
		if e.Code == cloudflareRecordExists {
			return true
		}
	}
	// Errors is left empty when the SDK could not map the envelope.
	var body struct {
		Errors []struct {
			Code int64 `json:"code"`
		} `json:"errors"`
	}
	if err := json.Unmarshal([]byte(apiErr.JSON.RawJSON()), &body); err != nil {
		return false
	}
	for _, e := range body.Errors {
		if e.Code == cloudflareRecordExists {
			return true
		}
	}
	return false
}
