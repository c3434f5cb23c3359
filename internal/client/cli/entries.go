package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"memento/internal/client/models"
)

// List prints the cached journal, newest first.
func (a *App) List(ctx context.Context) error {
	entries := a.journal.Entries()
	if len(entries) == 0 {
		printlnFn("Your journal is empty. Type 'add' to create your first entry.")
		return nil
	}
	for _, e := range entries {
		printlnFn(formatEntryLine(e))
	}
	return nil
}

// Favorites prints the cached entries marked as favorite.
func (a *App) Favorites(ctx context.Context) error {
	count := 0
	for _, e := range a.journal.Entries() {
		if e.IsFavorite {
			printlnFn(formatEntryLine(e))
			count++
		}
	}
	if count == 0 {
		printlnFn("No favorites yet. Type 'fav' to mark one.")
	}
	return nil
}

// Search queries the server with a text term and an optional category
// filter and prints the matches. The cache is left untouched.
func (a *App) Search(ctx context.Context) error {
	term, err := getSimpleText(a.reader, "Search for", os.Stdout)
	if err != nil {
		return err
	}

	raw, err := getSimpleText(a.reader, categoryPrompt("Category (empty for all)"), os.Stdout)
	if err != nil {
		return err
	}

	filter := models.ListFilter{Search: term}
	if raw != "" {
		category, err := models.ParseCategory(raw)
		if err != nil {
			printlnFn("Unknown category:", raw)
			return err
		}
		filter.Category = category
	}

	list, err := a.journal.Search(ctx, filter)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	printlnFn(fmt.Sprintf("%d results found", list.Total))
	for _, e := range list.Entries {
		printlnFn(formatEntryLine(e))
	}
	return nil
}

// Add collects a new entry and sends it to the server; the cache is updated
// only with the record the server confirms. Word entries additionally ask
// for the optional phonetic spelling and usage example.
func (a *App) Add(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, categoryPrompt("Category"), os.Stdout)
	if err != nil {
		return err
	}
	category, err := models.ParseCategory(raw)
	if err != nil {
		printlnFn("Unknown category:", raw)
		return err
	}

	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}

	content, err := getMultiline(a.reader, "Content:", os.Stdout)
	if err != nil {
		return err
	}

	payload := models.EntryPayload{Title: title, Content: content, Category: category}

	if category == models.CategoryWord {
		if payload.Phonetic, err = getSimpleText(a.reader, "Phonetic (optional)", os.Stdout); err != nil {
			return err
		}
		if payload.Example, err = getSimpleText(a.reader, "Example (optional)", os.Stdout); err != nil {
			return err
		}
	}

	entry, err := a.journal.Create(ctx, payload)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	printlnFn(fmt.Sprintf("Saved %q (%s)", entry.Title, entry.ID))
	return nil
}

// Edit updates an existing entry field by field; pressing Enter keeps the
// current value. Only changed fields are sent to the server.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to edit", os.Stdout)
	if err != nil {
		return err
	}

	current, ok := a.journal.Get(id)
	if !ok {
		printlnFn("No entry with id", id)
		return nil
	}

	var update models.EntryUpdate

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), os.Stdout)
	if err != nil {
		return err
	}
	if title != "" && title != current.Title {
		update.Title = &title
	}

	content, err := getSimpleText(a.reader, "Content (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if content != "" && content != current.Content {
		update.Content = &content
	}

	raw, err := getSimpleText(a.reader, fmt.Sprintf("Category [%s]", current.Category), os.Stdout)
	if err != nil {
		return err
	}
	if raw != "" {
		category, err := models.ParseCategory(raw)
		if err != nil {
			printlnFn("Unknown category:", raw)
			return err
		}
		if category != current.Category {
			update.Category = &category
		}
	}

	if update.Empty() {
		printlnFn("Nothing to change.")
		return nil
	}

	entry, err := a.journal.Update(ctx, id, update)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	printlnFn(fmt.Sprintf("Updated %q", entry.Title))
	return nil
}

// Show prints one cached entry in full.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to show", os.Stdout)
	if err != nil {
		return err
	}

	e, ok := a.journal.Get(id)
	if !ok {
		printlnFn("No entry with id", id)
		return nil
	}

	printlnFn(fmt.Sprintf("[%s] %s%s", e.Category, e.Title, favoriteMark(e)))
	printlnFn(e.Content)
	if e.Phonetic != "" {
		printlnFn("Phonetic:", e.Phonetic)
	}
	if e.Example != "" {
		printlnFn("Example:", e.Example)
	}
	printlnFn("Created:", e.CreatedAt.Format("Jan 2, 2006"))
	return nil
}

// Delete removes an entry on the server, then from the cache.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.journal.Delete(ctx, id); err != nil {
		a.reportError(ctx, err)
		return err
	}

	printlnFn("Deleted.")
	return nil
}

// ToggleFavorite flips the favorite flag of an entry.
func (a *App) ToggleFavorite(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id", os.Stdout)
	if err != nil {
		return err
	}

	entry, err := a.journal.ToggleFavorite(ctx, id)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	if entry.IsFavorite {
		printlnFn(fmt.Sprintf("%q marked as favorite", entry.Title))
	} else {
		printlnFn(fmt.Sprintf("%q unmarked", entry.Title))
	}
	return nil
}

func categoryPrompt(label string) string {
	names := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		names = append(names, string(c))
	}
	return fmt.Sprintf("%s (%s)", label, strings.Join(names, "/"))
}

func favoriteMark(e models.JournalEntry) string {
	if e.IsFavorite {
		return " ★"
	}
	return ""
}

func formatEntryLine(e models.JournalEntry) string {
	return fmt.Sprintf("%s  %s  %-7s  %s%s: %s",
		e.ID, e.CreatedAt.Format("2006-01-02"), e.Category, e.Title, favoriteMark(e), truncate(e.Content, 60))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
