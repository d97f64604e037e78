// Package store reads and writes the workout app's Firestore documents.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Mr-LMN/CircuitsAPP/chipper"
	"github.com/Mr-LMN/CircuitsAPP/models"
)

const (
	workoutsCollection = "workouts"
	sessionsCollection = "sessions"
	scoresCollection   = "scores"
	profilesCollection = "profiles"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Firestore is the document store backed by a Firestore client.
type Firestore struct {
	client *firestore.Client
}

// New connects to Firestore. When emulatorHost is set the client talks to the
// emulator without credentials.
func New(ctx context.Context, projectID, emulatorHost string) (*Firestore, error) {
	var opts []option.ClientOption
	if emulatorHost != "" {
		opts = append(opts, option.WithEndpoint(emulatorHost), option.WithoutAuthentication())
	}
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) Workout(ctx context.Context, id string) (*models.Workout, error) {
	var w models.Workout
	data, err := f.get(ctx, workoutsCollection, id, &w)
	if err != nil {
		return nil, err
	}
	w.ID = id
	w.Extra = data
	return &w, nil
}

func (f *Firestore) Session(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	data, err := f.get(ctx, sessionsCollection, id, &s)
	if err != nil {
		return nil, err
	}
	s.ID = id
	s.Extra = data
	return &s, nil
}

func (f *Firestore) Score(ctx context.Context, id string) (*models.Score, error) {
	var s models.Score
	if _, err := f.get(ctx, scoresCollection, id, &s); err != nil {
		return nil, err
	}
	s.ID = id
	return &s, nil
}

func (f *Firestore) Profiles(ctx context.Context) ([]models.Profile, error) {
	iter := f.client.Collection(profilesCollection).Documents(ctx)
	defer iter.Stop()

	profiles := make([]models.Profile, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list profiles: %w", err)
		}
		var p models.Profile
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to parse profile %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// SaveWorkoutSteps replaces the steps of an existing workout.
func (f *Firestore) SaveWorkoutSteps(ctx context.Context, id string, steps []chipper.Step) error {
	updates := []firestore.Update{
		{Path: "steps", Value: steps},
		{Path: "updatedAt", Value: time.Now().UTC()},
	}
	_, err := f.client.Collection(workoutsCollection).Doc(id).Update(ctx, updates)
	return translate(err, "failed to update workout "+id)
}

// SaveSessionTimer replaces the timer state of an existing session.
func (f *Firestore) SaveSessionTimer(ctx context.Context, id string, timer models.TimerState) error {
	_, err := f.client.Collection(sessionsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "timer", Value: timer},
	})
	return translate(err, "failed to update session "+id)
}

// get decodes a document into dst and also returns its raw fields.
func (f *Firestore) get(ctx context.Context, collection, id string, dst interface{}) (map[string]interface{}, error) {
	docSnap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("failed to get %s/%s", collection, id))
	}
	if err := docSnap.DataTo(dst); err != nil {
		return nil, fmt.Errorf("failed to parse %s/%s: %w", collection, id, err)
	}
	return docSnap.Data(), nil
}

// translate maps gRPC NotFound to ErrNotFound and wraps every other error with msg.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
