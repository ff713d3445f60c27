package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"slidecraft/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateDeck(ctx context.Context, deck *models.Deck) error {
	now := time.Now()
	deck.CreatedAt, deck.UpdatedAt = now, now
	if deck.SlideIDs == nil {
		deck.SlideIDs = []primitive.ObjectID{}
	}
	result, err := s.decks.InsertOne(ctx, deck)
	if err != nil {
		return fmt.Errorf("failed to insert deck: %w", err)
	}
	deck.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// ListDecks returns the owner's decks, newest first.
func (s *Store) ListDecks(ctx context.Context, owner primitive.ObjectID) ([]models.Deck, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.decks.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	decks := []models.Deck{}
	if err := cursor.All(ctx, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

// GetDeck loads a deck owned by owner. Decks of other owners are reported
// as ErrNotFound.
func (s *Store) GetDeck(ctx context.Context, id, owner primitive.ObjectID) (*models.Deck, error) {
	var deck models.Deck
	err := s.decks.FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&deck)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deck, nil
}

// UpdateDeck saves the title, theme and visibility of a deck.
func (s *Store) UpdateDeck(ctx context.Context, deck *models.Deck) error {
	deck.UpdatedAt = time.Now()
	result, err := s.decks.UpdateOne(ctx,
		bson.M{"_id": deck.ID, "owner": deck.Owner},
		bson.M{"$set": bson.M{
			"title":     deck.Title,
			"theme":     deck.Theme,
			"isPublic":  deck.IsPublic,
			"updatedAt": deck.UpdatedAt,
		}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDeck removes a deck together with its slides.
func (s *Store) DeleteDeck(ctx context.Context, id, owner primitive.ObjectID) error {
	result, err := s.decks.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := s.slides.DeleteMany(ctx, bson.M{"deck": id}); err != nil {
		return fmt.Errorf("failed to delete slides of deck %s: %w", id.Hex(), err)
	}
	return nil
}

// ListSlides returns the slides a deck references, in reference order.
// Slide documents the deck does not point at (leftovers of an interrupted
// replacement) are never returned.
func (s *Store) ListSlides(ctx context.Context, deck *models.Deck) ([]models.Slide, error) {
	slides := []models.Slide{}
	if len(deck.SlideIDs) == 0 {
		return slides, nil
	}
	cursor, err := s.slides.Find(ctx, bson.M{"deck": deck.ID, "_id": bson.M{"$in": deck.SlideIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &slides); err != nil {
		return nil, err
	}
	return orderByRefs(slides, deck.SlideIDs), nil
}

// orderByRefs sorts slides into the order of refs and renumbers Order densely.
func orderByRefs(slides []models.Slide, refs []primitive.ObjectID) []models.Slide {
	pos := make(map[primitive.ObjectID]int, len(refs))
	for i, id := range refs {
		if _, seen := pos[id]; !seen {
			pos[id] = i
		}
	}
	sort.SliceStable(slides, func(i, j int) bool { return pos[slides[i].ID] < pos[slides[j].ID] })
	for i := range slides {
		slides[i].Order = i
	}
	return slides
}

// ReplaceSlides swaps the slides of a deck wholesale. New slides are written
// first and the deck's references switched afterwards, so a failure part way
// leaves the deck pointing at its previous slides.
func (s *Store) ReplaceSlides(ctx context.Context, deckID, owner primitive.ObjectID, slides []models.Slide) ([]models.Slide, error) {
	var previous models.Deck
	if err := s.decks.FindOne(ctx, bson.M{"_id": deckID, "owner": owner}).Decode(&previous); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	for i := range slides {
		slides[i].ID = primitive.NewObjectID()
		slides[i].Deck = deckID
		slides[i].Order = i
		slides[i].CreatedAt, slides[i].UpdatedAt = now, now
	}
	if err := swapSlides(ctx, s.slides, s.decks, deckID, owner, slides, now); err != nil {
		return nil, err
	}
	return slides, nil
}

type slideWriter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

type deckRefWriter interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// swapSlides inserts slides, points the deck at them and then removes every
// other slide of the deck. Until the deck update succeeds any inserted
// documents are deleted again on failure. Once it has succeeded the
// replacement is committed: a failed sweep of the old slides only leaves
// unreferenced documents, which ListSlides ignores and the next
// replacement or deck deletion removes.
func swapSlides(ctx context.Context, slides slideWriter, decks deckRefWriter, deckID, owner primitive.ObjectID, newSlides []models.Slide, now time.Time) error {
	docs := make([]interface{}, len(newSlides))
	ids := make([]primitive.ObjectID, len(newSlides))
	for i := range newSlides {
		docs[i] = newSlides[i]
		ids[i] = newSlides[i].ID
	}
	dropNew := func() {
		if len(ids) > 0 {
			_, _ = slides.DeleteMany(context.WithoutCancel(ctx), bson.M{"_id": bson.M{"$in": ids}})
		}
	}

	if len(docs) > 0 {
		if _, err := slides.InsertMany(ctx, docs); err != nil {
			// An ordered insert may have stored a prefix of the batch.
			dropNew()
			return fmt.Errorf("failed to insert slides: %w", err)
		}
	}

	result, err := decks.UpdateOne(ctx,
		bson.M{"_id": deckID, "owner": owner},
		bson.M{"$set": bson.M{"slides": ids, "updatedAt": now}})
	if err == nil && result.MatchedCount == 0 {
		err = ErrNotFound
	}
	if err != nil {
		dropNew()
		return err
	}

	_, _ = slides.DeleteMany(context.WithoutCancel(ctx), bson.M{"deck": deckID, "_id": bson.M{"$nin": ids}})
	return nil
}

// UpdateSlide edits the title and content of one slide of a deck.
func (s *Store) UpdateSlide(ctx context.Context, deckID, slideID primitive.ObjectID, title, content string) (*models.Slide, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var slide models.Slide
	err := s.slides.FindOneAndUpdate(ctx,
		bson.M{"_id": slideID, "deck": deckID},
		bson.M{"$set": bson.M{"title": title, "content": content, "updatedAt": time.Now()}},
		opts,
	).Decode(&slide)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &slide, nil
}
