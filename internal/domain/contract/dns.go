package contract

import (
	"context"

	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

// DNSProvider operates on the records of the single zone it was built for.
// CreateRecord reports an identical existing record as domain.ErrRecordExists.
type DNSProvider interface {
	Name() string
	VerifyZone(ctx context.Context) error
	ListRecords(ctx context.Context, name string, recordType valueobject.RecordType) ([]valueobject.Record, error)
	CreateRecord(ctx context.Context, record valueobject.Record) error
	DeleteRecord(ctx context.Context, record valueobject.Record) error
}
