package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

// partitionKey groups all registry rows in one partition; the row key
// is the code itself, so lookups are point reads and batch deletes stay
// within a single partition (a table-transaction requirement).
const partitionKey = "CustomerContent"

// Repository defines registry data access.
type Repository interface {
	Insert(ctx context.Context, rec *AccessCode) error
	Get(ctx context.Context, code string) (*AccessCode, error)
	List(ctx context.Context) ([]AccessCode, error)
	Upsert(ctx context.Context, rec *AccessCode) error
	// Delete reports whether a row existed; deleting a missing row is
	// not an error.
	Delete(ctx context.Context, code string) (bool, error)
	// DeleteBatch removes up to maxBatchSize rows in one atomic table
	// transaction.
	DeleteBatch(ctx context.Context, codes []string) error
}

// TableRepository stores access codes in an Azure Storage table.
type TableRepository struct {
	client *aztables.Client
}

func NewTableRepository(svc *aztables.ServiceClient, table string) *TableRepository {
	return &TableRepository{client: svc.NewClient(table)}
}

func (r *TableRepository) Insert(ctx context.Context, rec *AccessCode) error {
	data, err := marshalEntity(rec)
	if err != nil {
		return err
	}
	if _, err := r.client.AddEntity(ctx, data, nil); err != nil {
		if statusCode(err) == http.StatusConflict {
			return ErrCodeExists
		}
		return storeErr("insert", err)
	}
	return nil
}

func (r *TableRepository) Get(ctx context.Context, code string) (*AccessCode, error) {
	resp, err := r.client.GetEntity(ctx, partitionKey, code, nil)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, storeErr("get", err)
	}
	return unmarshalEntity(resp.Value)
}

func (r *TableRepository) List(ctx context.Context) ([]AccessCode, error) {
	filter := fmt.Sprintf("PartitionKey eq '%s'", partitionKey)
	pager := r.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})

	var out []AccessCode
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, storeErr("list", err)
		}
		for _, raw := range page.Entities {
			rec, err := unmarshalEntity(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *TableRepository) Upsert(ctx context.Context, rec *AccessCode) error {
	data, err := marshalEntity(rec)
	if err != nil {
		return err
	}
	if _, err := r.client.UpsertEntity(ctx, data, nil); err != nil {
		return storeErr("upsert", err)
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, code string) (bool, error) {
	if _, err := r.client.DeleteEntity(ctx, partitionKey, code, nil); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return false, nil
		}
		return false, storeErr("delete", err)
	}
	return true, nil
}

func (r *TableRepository) DeleteBatch(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	actions := make([]aztables.TransactionAction, 0, len(codes))
	for _, code := range codes {
		data, err := json.Marshal(aztables.Entity{
			PartitionKey: partitionKey,
			RowKey:       code,
		})
		if err != nil {
			return err
		}
		actions = append(actions, aztables.TransactionAction{
			ActionType: aztables.TransactionTypeDelete,
			Entity:     data,
		})
	}
	if _, err := r.client.SubmitTransaction(ctx, actions, nil); err != nil {
		return storeErr("delete batch", err)
	}
	return nil
}

func marshalEntity(rec *AccessCode) ([]byte, error) {
	ent := aztables.EDMEntity{
		Entity: aztables.Entity{
			PartitionKey: partitionKey,
			RowKey:       rec.Code,
		},
		Properties: map[string]any{
			"DisplayName":     rec.DisplayName,
			"SharePath":       rec.SharePath,
			"KeepAliveMonths": int32(rec.KeepAliveMonths),
			"CreatedOn":       aztables.EDMDateTime(rec.CreatedOn),
		},
	}
	return json.Marshal(ent)
}

func unmarshalEntity(raw []byte) (*AccessCode, error) {
	var ent aztables.EDMEntity
	if err := json.Unmarshal(raw, &ent); err != nil {
		return nil, fmt.Errorf("decode registry row: %w", err)
	}

	rec := &AccessCode{Code: ent.RowKey}
	if v, ok := ent.Properties["DisplayName"].(string); ok {
		rec.DisplayName = v
	}
	if v, ok := ent.Properties["SharePath"].(string); ok {
		rec.SharePath = v
	}
	if v, ok := ent.Properties["KeepAliveMonths"].(int32); ok {
		rec.KeepAliveMonths = int(v)
	}
	switch v := ent.Properties["CreatedOn"].(type) {
	case aztables.EDMDateTime:
		rec.CreatedOn = time.Time(v)
	case time.Time:
		rec.CreatedOn = v
	}
	return rec, nil
}

func statusCode(err error) int {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
