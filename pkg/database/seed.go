package database

import (
	"context"
	"errors"
	"fmt"

	"mutual-aid/internal/domain/chat"
	"mutual-aid/internal/domain/request"
	"mutual-aid/internal/domain/user"
	"mutual-aid/internal/proxy"
	"mutual-aid/internal/repository"
	"mutual-aid/internal/services"
	aid_errors "mutual-aid/pkg/errors"
	"mutual-aid/pkg/logger"
)

// SeedResult holds what the seeding run produced or found.
type SeedResult struct {
	Users    []user.User
	Requests []request.HelpRequest
	Messages []chat.Message
}

type seedUser struct {
	name     string
	contact  string
	location string
	role     user.Role
}

var demoUsers = []seedUser{
	{name: "Alice Moreno", contact: "alice@example.org", location: "12 Elm Street", role: user.RoleResident},
	{name: "Dave Okafor", contact: "dave@example.org", location: "3 Birch Lane", role: user.RoleResident},
	{name: "Bob Lindqvist", contact: "bob@example.org", location: "40 Elm Street", role: user.RoleHelper},
	{name: "Carol Tan", contact: "carol@example.org", location: "7 Oak Court", role: user.RoleHelper},
}

// SeedDevelopment fills store with a small neighborhood: two residents, two
// helpers, and requests in every status. Running it twice does not create
// duplicates.
func SeedDevelopment(ctx context.Context, store *repository.Store, l *logger.Logger) (*SeedResult, error) {
	if l == nil {
		l = logger.NewNop()
	}
	users := services.NewUserService(store.Users, nil, l)
	requests := services.NewRequestService(store.Requests, store.Chat, store.Users, l)
	chats := services.NewChatService(store.Chat, proxy.NewAccessControl(store.Requests, false), store.Users, l)

	result := &SeedResult{}
	byContact := make(map[string]user.User, len(demoUsers))
	for _, su := range demoUsers {
		u, err := users.Register(ctx, services.RegisterInput{
			Name:        su.name,
			ContactInfo: su.contact,
			Location:    su.location,
			Role:        string(su.role),
		})
		if errors.Is(err, aid_errors.ErrDuplicateContact) {
			u, err = users.Login(ctx, su.contact)
		}
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", su.contact, err)
		}
		byContact[su.contact] = u
		result.Users = append(result.Users, u)
	}

	alice, dave := byContact["alice@example.org"], byContact["dave@example.org"]
	bob, carol := byContact["bob@example.org"], byContact["carol@example.org"]

	existing, err := requests.List(ctx, request.Filter{})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		l.Infof("seed: %d requests already present, skipping", len(existing))
		result.Requests = existing
		return result, nil
	}

	type plan struct {
		owner    user.User
		title    string
		desc     string
		category request.Category
		urgency  request.Urgency
		helper   *user.User
		steps    []request.Status
		chat     []string
	}
	plans := []plan{
		{
			owner: alice, title: "Move couch", desc: "Need a second pair of hands to carry a couch upstairs.",
			category: request.CategoryHomeRepair, urgency: request.UrgencyMedium,
			helper: &bob, steps: []request.Status{request.StatusAccepted, request.StatusInProgress},
			chat: []string{"Thanks for taking this!", "Happy to help, see you at 5."},
		},
		{
			owner: alice, title: "Weekly groceries", desc: "Milk, bread and vegetables from the corner shop.",
			category: request.CategoryGroceries, urgency: request.UrgencyHigh,
		},
		{
			owner: dave, title: "Walk the dog", desc: "Rex needs a walk while I recover from surgery.",
			category: request.CategoryPetCare, urgency: request.UrgencyLow,
			helper: &carol, steps: []request.Status{request.StatusAccepted, request.StatusInProgress, request.StatusCompleted},
			chat: []string{"Rex is ready at 8am.", "Done, he had a great time."},
		},
		{
			owner: dave, title: "Set up new phone", desc: "Transfer contacts to the new phone.",
			category: request.CategoryTechSupport, urgency: request.UrgencyMedium,
			helper: &bob, steps: []request.Status{request.StatusAccepted},
		},
	}

	for _, p := range plans {
		hr, err := requests.Create(ctx, services.CreateRequestInput{
			ResidentID:   p.owner.ID,
			ResidentName: p.owner.Name,
			Title:        p.title,
			Description:  p.desc,
			Category:     string(p.category),
			Urgency:      string(p.urgency),
			Location:     p.owner.Location,
		})
		if err != nil {
			return nil, fmt.Errorf("seed request %q: %w", p.title, err)
		}
		for _, step := range p.steps {
			hr, err = requests.UpdateStatus(ctx, hr.ID, step, services.Actor{ID: p.helper.ID, Name: p.helper.Name})
			if err != nil {
				return nil, fmt.Errorf("seed request %q to %s: %w", p.title, step, err)
			}
		}
		for i, text := range p.chat {
			sender := p.owner
			if i%2 == 1 {
				sender = *p.helper
			}
			m, err := chats.PostMessage(ctx, services.PostMessageInput{
				RequestID:  hr.ID,
				SenderID:   sender.ID,
				SenderName: sender.Name,
				Text:       text,
			})
			if err != nil {
				return nil, fmt.Errorf("seed chat for %q: %w", p.title, err)
			}
			result.Messages = append(result.Messages, m)
		}
		result.Requests = append(result.Requests, hr)
	}

	l.Infof("seed: %d users, %d requests, %d messages", len(result.Users), len(result.Requests), len(result.Messages))
	return result, nil
}
