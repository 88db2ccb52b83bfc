/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memorydb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

var ErrNotFound = errors.New("memorydb key not found")

// MemoryDB is a leveldb instance on top of memory storage. Nothing survives
// Close.
type MemoryDB struct {
	db *leveldb.DB
}

func New() (*MemoryDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "error opening memory leveldb")
	}
	return &MemoryDB{db: db}, nil
}

func (m *MemoryDB) Get(key []byte) ([]byte, error) {
	val, err := m.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.Wrapf(ErrNotFound, "Error retrieving memorydb key: %s", key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Error retrieving memorydb key: %s", key)
	}
	return val, nil
}

func (m *MemoryDB) Put(key []byte, value []byte) error {
	return errors.Wrapf(m.db.Put(key, value, nil), "Error writing memorydb key: %s", key)
}

func (m *MemoryDB) Delete(key []byte) error {
	return errors.Wrapf(m.db.Delete(key, nil), "Error deleting memorydb key: %s", key)
}

func (m *MemoryDB) Has(key []byte) (bool, error) {
	ok, err := m.db.Has(key, nil)
	return ok, errors.Wrapf(err, "Error checking memorydb key: %s", key)
}

func (m *MemoryDB) Close() error {
	return m.db.Close()
}
