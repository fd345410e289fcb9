/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"oma.be/seismo/go-evt/pkg/evt"
	"oma.be/seismo/go-evt/pkg/log"
)

const (
	BucketName = "recordings"
)

// Entry is the catalog record of one decoded recording.
type Entry struct {
	ID           string    `json:"id"`
	Path         string    `json:"path"`
	Station      string    `json:"station"`
	Instrument   string    `json:"instrument"`
	StartTime    time.Time `json:"start_time"`
	SamplingRate int       `json:"sampling_rate"`
	Channels     int       `json:"channels"`
	Frames       int       `json:"frames"`
}

// EntryFromRecording builds a catalog entry for a decoded recording.
func EntryFromRecording(path string, rec *evt.Recording) *Entry {
	return &Entry{
		ID:           fmt.Sprintf("%s_%s", rec.Station, rec.StartTime.UTC().Format("20060102T150405")),
		Path:         path,
		Station:      rec.Station,
		Instrument:   rec.Header.Instrument(),
		StartTime:    rec.StartTime,
		SamplingRate: rec.SamplingRate,
		Channels:     rec.Channels,
		Frames:       rec.FrameCount,
	}
}

type Catalog struct {
	DB *bbolt.DB
}

func NewCatalog(path string) (*Catalog, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketName))
		return err
	}); err != nil {
		return nil, err
	}
	return &Catalog{
		DB: db,
	}, nil
}

// Close ...
func (c *Catalog) Close() {
	c.DB.Close()
}

// Put ...
func (c *Catalog) Put(entry *Entry) error {
	log.Debug("Putting catalog entry: %s", entry.ID)
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		return b.Put([]byte(entry.ID), data)
	})
}

// Get ...
func (c *Catalog) Get(id string) (*Entry, error) {
	log.Debug("Getting catalog entry: %s", id)
	entry := &Entry{}
	if err := c.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		data := b.Get([]byte(id))
		if data == nil {
			return ErrEntryNotFound{ID: id}
		}
		return json.Unmarshal(data, entry)
	}); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all catalog entries in key order.
func (c *Catalog) List() ([]*Entry, error) {
	var entries []*Entry
	if err := c.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		return b.ForEach(func(k, v []byte) error {
			entry := &Entry{}
			if err := json.Unmarshal(v, entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return entries, nil
}
