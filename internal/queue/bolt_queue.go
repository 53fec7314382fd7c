package queue

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

var jobsBucket = []byte("jobs")

// BoltQueue stores jobs in a bbolt database. The database is opened for each
// operation; bbolt's exclusive file lock provides the mutual exclusion and
// its open timeout bounds each attempt.
type BoltQueue struct {
	path  string
	retry Retry
}

// NewBoltQueue returns a queue backed by the bbolt file at path.
func NewBoltQueue(path string, retry Retry) *BoltQueue {
	return &BoltQueue{path: path, retry: retry.normalized()}
}

// Enqueue stores job under the next bucket sequence number.
func (q *BoltQueue) Enqueue(ctx context.Context, job Job) error {
	return q.update(ensureContext(ctx), func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(jobsBucket)
		if err != nil {
			return fmt.Errorf("create jobs bucket: %w", err)
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return bucket.Put(key, []byte(EncodeLine(job)))
	})
}

// DrainDistinct reads every job and replaces the bucket in one update transaction.
func (q *BoltQueue) DrainDistinct(ctx context.Context) ([]Job, error) {
	var jobs []Job
	err := q.update(ensureContext(ctx), func(tx *bbolt.Tx) error {
		jobs = readBucket(tx)
		if tx.Bucket(jobsBucket) == nil {
			return nil
		}
		if err := tx.DeleteBucket(jobsBucket); err != nil {
			return fmt.Errorf("clear jobs bucket: %w", err)
		}
		_, err := tx.CreateBucket(jobsBucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return Distinct(jobs), nil
}

// Pending lists queued jobs without removing them.
func (q *BoltQueue) Pending(ctx context.Context) ([]Job, error) {
	var jobs []Job
	err := q.withDB(ensureContext(ctx), func(db *bbolt.DB) error {
		return db.View(func(tx *bbolt.Tx) error {
			jobs = readBucket(tx)
			return nil
		})
	})
	return jobs, err
}

// Close is a no-op; the database is closed after every operation.
func (q *BoltQueue) Close() error {
	return nil
}

func readBucket(tx *bbolt.Tx) []Job {
	bucket := tx.Bucket(jobsBucket)
	if bucket == nil {
		return nil
	}
	var jobs []Job
	_ = bucket.ForEach(func(_, value []byte) error {
		if job, ok := DecodeLine(string(value)); ok {
			jobs = append(jobs, job)
		}
		return nil
	})
	return jobs
}

func (q *BoltQueue) update(ctx context.Context, fn func(*bbolt.Tx) error) error {
	return q.withDB(ctx, func(db *bbolt.DB) error {
		return db.Update(fn)
	})
}

func (q *BoltQueue) withDB(ctx context.Context, fn func(*bbolt.DB) error) error {
	opts := &bbolt.Options{Timeout: q.retry.Delay}
	for attempt := 0; attempt < q.retry.Attempts; attempt++ {
		db, err := bbolt.Open(q.path, 0o644, opts)
		if err == nil {
			fnErr := fn(db)
			if closeErr := db.Close(); closeErr != nil && fnErr == nil {
				fnErr = fmt.Errorf("close queue db: %w", closeErr)
			}
			return fnErr
		}
		if !errors.Is(err, berrors.ErrTimeout) {
			return fmt.Errorf("open queue db: %w", err)
		}
		if attempt == q.retry.Attempts-1 {
			break
		}
		if err := sleepContext(ctx, q.retry.Delay); err != nil {
			return err
		}
	}
	return ErrContention
}
