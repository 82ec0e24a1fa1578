package dns

import (
	"context"
	"errors"
	"fmt"

	alidns "github.com/alibabacloud-go/alidns-20150109/v4/client"
	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	"github.com/alibabacloud-go/tea/tea"
	domainerr "github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

const aliyunRecordExists = "DomainRecordDuplicate"

type AliyunProvider struct {
	client *alidns.Client
	zone   string
}

func NewAliyunProvider(accessKeyID, accessKeySecret, zone string) (*AliyunProvider, error) {
	config := &openapi.Config{
		AccessKeyId:     tea.String(accessKeyID),
		AccessKeySecret: tea.String(accessKeySecret),
	}
	config.Endpoint = tea.String("dns.aliyuncs.com")
	config.ReadTimeout = tea.Int(int(domainerr.CredentialTimeout.Milliseconds()))
	client, err := alidns.NewClient(config)
	if err != nil {
		return nil, domainerr.WrapOp("create aliyun dns client", err)
	}
	return &AliyunProvider{client: client, zone: zone}, nil
}

func (p *AliyunProvider) Name() string {
	return "aliyun"
}

func (p *AliyunProvider) VerifyZone(ctx context.Context) error {
	_, err := p.client.DescribeDomainInfo(&alidns.DescribeDomainInfoRequest{
		DomainName: tea.String(p.zone),
	})
	if err != nil {
		return domainerr.WrapOp("describe domain", err)
	}
	return nil
}

func (p *AliyunProvider) ListRecords(ctx context.Context, name string, recordType valueobject.RecordType) ([]valueobject.Record, error) {
	resp, err := p.client.DescribeSubDomainRecords(&alidns.DescribeSubDomainRecordsRequest{
		SubDomain:  tea.String(name),
		DomainName: tea.String(p.zone),
		Type:       tea.String(string(recordType)),
		PageSize:   tea.Int64(500),
	})
	if err != nil {
		return nil, domainerr.WrapOp("list records", err)
	}

	var records []valueobject.Record
	if resp.Body != nil && resp.Body.DomainRecords != nil {
		for _, r := range resp.Body.DomainRecords.Record {
			records = append(records, valueobject.Record{
				ID:      tea.StringValue(r.RecordId),
				Type:    valueobject.RecordType(tea.StringValue(r.Type)),
				Name:    GetFullDomain(tea.StringValue(r.RR), p.zone),
				Content: tea.StringValue(r.Value),
			})
		}
	}
	return records, nil
}

func (p *AliyunProvider) CreateRecord(ctx context.Context, record valueobject.Record) error {
	_, err := p.client.AddDomainRecord(&alidns.AddDomainRecordRequest{
		DomainName: tea.String(p.zone),
		RR:         tea.String(GetSubDomain(record.Name, p.zone)),
		Type:       tea.String(string(record.Type)),
		Value:      tea.String(record.Content),
	})
	if err != nil {
		if isAliyunDuplicate(err) {
			return fmt.Errorf("%w: %s %s %s", domainerr.ErrRecordExists, record.Type, record.Name, record.Content)
		}
		return domainerr.WrapOp("create record", err)
	}
	return nil
}

func (p *AliyunProvider) DeleteRecord(ctx context.Context, record valueobject.Record) error {
	_, err := p.client.DeleteDomainRecord(&alidns.DeleteDomainRecordRequest{
		RecordId: tea.String(record.ID),
	})
	if err != nil {
		return domainerr.WrapOp("delete record", err)
	}
	return nil
}

func isAliyunDuplicate(err error) bool {
	var sdkErr *tea.SDKError
	if errors.As(err, &sdkErr) {
		return tea.StringValue(sdkErr.Code) == aliyunRecordExists
	}
	return false
}
