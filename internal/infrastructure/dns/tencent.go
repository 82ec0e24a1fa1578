package dns

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	domainerr "github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	sdkerrors "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	dnspod "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/dnspod/v20210323"
)

const (
	tencentRecordExists = "InvalidParameter.DomainRecordExist"
	tencentNoRecords    = "ResourceNotFound.NoDataOfRecord"
	tencentDefaultLine  = "默认"
)

type TencentProvider struct {
	client *dnspod.Client
	zone   string
}

func NewTencentProvider(secretID, secretKey, zone string) (*TencentProvider, error) {
	credential := common.NewCredential(secretID, secretKey)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = "dnspod.tencentcloudapi.com"
	cpf.HttpProfile.ReqTimeout = int(domainerr.CredentialTimeout.Seconds())
	client, err := dnspod.NewClient(credential, "", cpf)
	if err != nil {
		return nil, domainerr.WrapOp("create tencent dns client", err)
	}
	return &TencentProvider{client: client, zone: zone}, nil
}

func (p *TencentProvider) Name() string {
	return "tencent"
}

func (p *TencentProvider) VerifyZone(ctx context.Context) error {
	req := dnspod.NewDescribeDomainRequest()
	req.Domain = common.StringPtr(p.zone)

	if _, err := p.client.DescribeDomainWithContext(ctx, req); err != nil {
		return domainerr.WrapOp("describe domain", err)
	}
	return nil
}

func (p *TencentProvider) ListRecords(ctx context.Context, name string, recordType valueobject.RecordType) ([]valueobject.Record, error) {
	req := dnspod.NewDescribeRecordListRequest()
	req.Domain = common.StringPtr(p.zone)
	req.Subdomain = common.StringPtr(GetSubDomain(name, p.zone))
	req.RecordType = common.StringPtr(string(recordType))

	resp, err := p.client.DescribeRecordListWithContext(ctx, req)
	if err != nil {
		if tencentCode(err) == tencentNoRecords {
			return nil, nil
		}
		return nil, domainerr.WrapOp("list records", err)
	}

	var records []valueobject.Record
	if resp.Response != nil {
		for _, r := range resp.Response.RecordList {
			if r.RecordId == nil {
				continue
			}
			records = append(records, valueobject.Record{
				ID:      strconv.FormatUint(*r.RecordId, 10),
				Type:    valueobject.RecordType(deref(r.Type)),
				Name:    GetFullDomain(deref(r.Name), p.zone),
				Content: deref(r.Value),
			})
		}
	}
	return records, nil
}

func (p *TencentProvider) CreateRecord(ctx context.Context, record valueobject.Record) error {
	req := dnspod.NewCreateRecordRequest()
	req.Domain = common.StringPtr(p.zone)
	req.SubDomain = common.StringPtr(GetSubDomain(record.Name, p.zone))
	req.RecordType = common.StringPtr(string(record.Type))
	req.RecordLine = common.StringPtr(tencentDefaultLine)
	req.Value = common.StringPtr(record.Content)

	if _, err := p.client.CreateRecordWithContext(ctx, req); err != nil {
		if tencentCode(err) == tencentRecordExists {
			return fmt.Errorf("%w: %s %s %s", domainerr.ErrRecordExists, record.Type, record.Name, record.Content)
		}
		return domainerr.WrapOp("create record", err)
	}
	return nil
}

func (p *TencentProvider) DeleteRecord(ctx context.Context, record valueobject.Record) error {
	id, err := strconv.ParseUint(record.ID, 10, 64)
	if err != nil {
		return domainerr.WrapOp("parse record ID", err)
	}

	req := dnspod.NewDeleteRecordRequest()
	req.Domain = common.StringPtr(p.zone)
	req.RecordId = common.Uint64Ptr(id)

	if _, err := p.client.DeleteRecordWithContext(ctx, req); err != nil {
		return domainerr.WrapOp("delete record", err)
	}
	return nil
}

func tencentCode(err error) string {
	var sdkErr *sdkerrors.TencentCloudSDKError
	if errors.As(err, &sdkErr) {
		return sdkErr.GetCode()
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
