package service

import (
	"io"
	"time"
)

func (s *AuthService) SetClock(now func() time.Time) { s.now = now }

func (s *DishService) SetClock(now func() time.Time) { s.now = now }

func (s *MenuContentService) SetClock(now func() time.Time) { s.now = now }

func (s *ImageService) SetClock(now func() time.Time) { s.now = now }

func (s *ImageService) SetRandom(r io.Reader) { s.random = r }

func (b *MemoryTokenBlacklist) SetClock(now func() time.Time) { b.now = now }
