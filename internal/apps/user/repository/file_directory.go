package repository

import (
	"context"
	"sync"
	"time"

	"spam-shield/internal/apps/user/models"
	"spam-shield/pkg/yamlfile"
)

type directoryFile struct {
	Users map[string]models.VerifiedUser `yaml:"users"`
}

type fileDirectory struct {
	mu   sync.Mutex
	path string
	doc  directoryFile
}

// NewFileDirectory loads (or starts) the directory file at path
func NewFileDirectory(path string) (Directory, error) {
	d := &fileDirectory{path: path}
	if err := yamlfile.Load(path, &d.doc); err != nil {
		return nil, err
	}
	if d.doc.Users == nil {
		d.doc.Users = make(map[string]models.VerifiedUser)
	}
	return d, nil
}

func (d *fileDirectory) Upsert(_ context.Context, phone, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now().UTC()
	prev, existed := d.doc.Users[phone]
	next := models.VerifiedUser{Phone: phone, Name: name, CreatedAt: now, UpdatedAt: now}
	if existed {
		next.CreatedAt = prev.CreatedAt
	}

	d.doc.Users[phone] = next
	if err := yamlfile.Save(d.path, d.doc); err != nil {
		if existed {
			d.doc.Users[phone] = prev
		} else {
			delete(d.doc.Users, phone)
		}
		return err
	}
	return nil
}

func (d *fileDirectory) Get(_ context.Context, phone string) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.doc.Users[phone]
	return user.Name, ok, nil
}
