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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"oma.be/seismo/go-evt/pkg/catalog"
	"oma.be/seismo/go-evt/pkg/config"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.ApiAddress, cfg.ApiPort),
	}
}

// ListRecordings sends request to get all catalog entries
func (c *ApiClient) ListRecordings() ([]*catalog.Entry, error) {
	r, err := req.Get(fmt.Sprintf("%s/recordings", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var entries []*catalog.Entry
	err = r.ToJSON(&entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetRecording sends request to get one catalog entry by id
func (c *ApiClient) GetRecording(id string) (*catalog.Entry, error) {
	r, err := req.Get(fmt.Sprintf("%s/recordings/%s", c.ApiPrefix, id))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	entry := &catalog.Entry{}
	err = r.ToJSON(entry)
	if err != nil {
		return nil, err
	}
	return entry, nil
}
