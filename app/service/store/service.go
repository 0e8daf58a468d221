package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"claimsdesk/app/config"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/samber/do"
	"github.com/samber/oops"
)

var ErrNotFound = errors.New("store: not found")

const (
	customerPrefix = "customer:"
	disputePrefix  = "dispute:"
	messagePrefix  = "message:"
)

var _ do.Shutdownable = (*Service)(nil)

type Service struct {
	cfg *config.Config
	db  *badger.DB
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	opts := badger.DefaultOptions(cfg.Store.Dir).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, oops.Errorf("failed to open store at %s: %w", cfg.Store.Dir, err)
	}

	s := &Service{
		cfg: cfg,
		db:  db,
	}

	if cfg.Store.SeedSampleData {
		if err = s.SeedSampleData(); err != nil {
			_ = db.Close()
			return nil, oops.Errorf("failed to seed sample data: %w", err)
		}
	}

	return s, nil
}

// NewWithDB wires the service around an already opened database. Used by tests
// running against an in-memory badger instance.
func NewWithDB(cfg *config.Config, db *badger.DB) *Service {
	return &Service{cfg: cfg, db: db}
}

func (s *Service) put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return oops.Errorf("failed to marshal %s: %w", key, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return oops.Errorf("failed to put %s: %w", key, err)
	}

	return nil
}

func (s *Service) get(key string, out any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return oops.Errorf("failed to get %s: %w", key, err)
	}

	return nil
}

func (s *Service) delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return oops.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func getAll[T any](s *Service, prefix string) ([]T, error) {
	result := make([]T, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var value T
				if err := json.Unmarshal(val, &value); err != nil {
					return err
				}

				result = append(result, value)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, oops.Errorf("failed to scan prefix %s: %w", prefix, err)
	}

	return result, nil
}

func bulkInsert[T any](s *Service, keyOf func(T) string, values []T) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			return oops.Errorf("failed to marshal %s: %w", keyOf(value), err)
		}

		if err = wb.Set([]byte(keyOf(value)), data); err != nil {
			return oops.Errorf("failed to batch %s: %w", keyOf(value), err)
		}
	}

	if err := wb.Flush(); err != nil {
		return oops.Errorf("failed to flush bulk insert: %w", err)
	}

	return nil
}

func (s *Service) SaveCustomer(customer Customer) error {
	return s.put(customerPrefix+customer.ID, customer)
}

func (s *Service) GetCustomerByID(id string) (Customer, error) {
	var customer Customer
	if err := s.get(customerPrefix+id, &customer); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

func (s *Service) GetAllCustomers() ([]Customer, error) {
	return getAll[Customer](s, customerPrefix)
}

func (s *Service) DeleteCustomer(id string) error {
	return s.delete(customerPrefix + id)
}

func (s *Service) BulkInsertCustomers(customers []Customer) error {
	return bulkInsert(s, func(c Customer) string {
		return customerPrefix + c.ID
	}, customers)
}

func (s *Service) SaveDispute(dispute DisputeCase) error {
	return s.put(disputePrefix+dispute.ID, dispute)
}

func (s *Service) GetDisputeByID(id string) (DisputeCase, error) {
	var dispute DisputeCase
	if err := s.get(disputePrefix+id, &dispute); err != nil {
		return DisputeCase{}, err
	}

	return dispute, nil
}

func (s *Service) GetAllDisputes() ([]DisputeCase, error) {
	return getAll[DisputeCase](s, disputePrefix)
}

func (s *Service) DeleteDispute(id string) error {
	return s.delete(disputePrefix + id)
}

func (s *Service) BulkInsertDisputes(disputes []DisputeCase) error {
	return bulkInsert(s, func(d DisputeCase) string {
		return disputePrefix + d.ID
	}, disputes)
}

func (s *Service) SaveMessage(message Message) error {
	return s.put(messagePrefix+message.ID, message)
}

func (s *Service) GetAllMessages() ([]Message, error) {
	return getAll[Message](s, messagePrefix)
}

func (s *Service) GetMessagesByCustomerID(customerID string) ([]Message, error) {
	messages, err := getAll[Message](s, messagePrefix)
	if err != nil {
		return nil, err
	}

	result := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.CustomerID == customerID {
			result = append(result, msg)
		}
	}

	return result, nil
}

// HasAnyData reports whether any customer or dispute record exists. It drives
// the one-time sample seeding.
func (s *Service) HasAnyData() (bool, error) {
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			if strings.HasPrefix(key, customerPrefix) || strings.HasPrefix(key, disputePrefix) {
				found = true
				return nil
			}
		}

		return nil
	})
	if err != nil {
		return false, oops.Errorf("failed to check for existing data: %w", err)
	}

	return found, nil
}

func (s *Service) SeedSampleData() error {
	hasData, err := s.HasAnyData()
	if err != nil {
		return err
	}

	if hasData {
		slog.Debug("Store already has data, skipping seeding")
		return nil
	}

	if err = s.BulkInsertCustomers(sampleCustomers()); err != nil {
		return err
	}

	if err = s.BulkInsertDisputes(sampleDisputes()); err != nil {
		return err
	}

	slog.Info("Seeded sample data",
		"customers", len(sampleCustomers()),
		"disputes", len(sampleDisputes()),
	)

	return nil
}

func (s *Service) Shutdown() error {
	return s.db.Close()
}
