package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/sous/internal/adapter"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/importer"
	"github.com/mmcdole/sous/internal/service"
)

// Command factories for async operations

// storeTimeout bounds local store round-trips. bbolt is fast but a
// flushing disk can stall a write.
const storeTimeout = 5 * time.Second

// LoadAllRecipesCmd loads the merged catalog plus user recipes
func LoadAllRecipesCmd(svc *service.RecipeService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		recipes, err := svc.All(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading recipes"}
		}
		return RecipesLoadedMsg{Recipes: recipes}
	}
}

// LoadRecipeCmd loads a single recipe by ID
func LoadRecipeCmd(svc *service.RecipeService, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		recipe, err := svc.Recipe(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading recipe"}
		}
		return RecipeLoadedMsg{Recipe: recipe}
	}
}

// LoadMyRecipesCmd loads recipes authored on this machine
func LoadMyRecipesCmd(svc *service.RecipeService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		recipes, err := svc.Mine(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading my recipes"}
		}
		return MyRecipesLoadedMsg{Recipes: recipes}
	}
}

// LoadSavedRecipesCmd loads bookmarked recipes
func LoadSavedRecipesCmd(svc *service.RecipeService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		recipes, err := svc.Bookmarked(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading saved recipes"}
		}
		return SavedRecipesLoadedMsg{Recipes: recipes}
	}
}

// LoadCategoryRecipesCmd loads one category's recipes
func LoadCategoryRecipesCmd(svc *service.RecipeService, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		recipes, err := svc.ByCategory(ctx, category)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading category"}
		}
		return CategoryRecipesLoadedMsg{Recipes: recipes, Category: category}
	}
}

// LoadCategoriesCmd loads category counts
func LoadCategoriesCmd(svc *service.RecipeService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		categories, err := svc.Categories(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading categories"}
		}
		return CategoriesLoadedMsg{Categories: categories}
	}
}

// LoadPlanCmd loads the week plan and resolves assigned recipe titles
func LoadPlanCmd(planner *service.PlannerService, recipes *service.RecipeService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		plan, err := planner.Plan(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading plan"}
		}

		titles := make(map[int]string)
		for _, day := range plan.Days {
			for _, slot := range domain.MealSlots() {
				id := day.Get(slot)
				if id == 0 {
					continue
				}
				if _, seen := titles[id]; seen {
					continue
				}
				titles[id] = resolveTitle(ctx, recipes, id)
			}
		}
		return PlanLoadedMsg{Plan: plan, Titles: titles}
	}
}

// resolveTitle looks up a recipe title, tolerating recipes deleted since
// they were referenced
func resolveTitle(ctx context.Context, recipes *service.RecipeService, id int) string {
	r, err := recipes.Recipe(ctx, id)
	if err != nil {
		return "(removed)"
	}
	return r.Title
}

// LoadGroceryCmd loads the grocery list
func LoadGroceryCmd(svc *service.GroceryService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		items, err := svc.Items(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading grocery list"}
		}
		return GroceryLoadedMsg{Items: items}
	}
}

// LoadProfileCmd loads the profile, cooking stats, and recent history
func LoadProfileCmd(profile *service.ProfileService, recipes *service.RecipeService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		p, err := profile.Profile(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading profile"}
		}
		stats, err := profile.Stats(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading cooking stats"}
		}
		history, err := profile.History(ctx, 20)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading history"}
		}

		titles := make(map[int]string)
		for _, entry := range history {
			if _, seen := titles[entry.RecipeID]; seen {
				continue
			}
			titles[entry.RecipeID] = resolveTitle(ctx, recipes, entry.RecipeID)
		}
		return ProfileLoadedMsg{Profile: p, Stats: stats, History: history, Titles: titles}
	}
}

// ToggleBookmarkCmd flips a recipe's bookmark state
func ToggleBookmarkCmd(svc *service.RecipeService, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		bookmarked, err := svc.ToggleBookmark(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "toggling bookmark"}
		}
		return BookmarkToggledMsg{RecipeID: id, Bookmarked: bookmarked}
	}
}

// UpvoteCmd records an upvote for a recipe
func UpvoteCmd(svc *service.RecipeService, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		upvotes, err := svc.Upvote(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "upvoting"}
		}
		return UpvotedMsg{RecipeID: id, Upvotes: upvotes}
	}
}

// SaveRecipeCmd creates or updates a user recipe
func SaveRecipeCmd(svc *service.RecipeService, r *domain.Recipe) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		id, err := svc.Save(ctx, r)
		if err != nil {
			return ErrMsg{Err: err, Context: "saving recipe"}
		}
		return RecipeSavedMsg{RecipeID: id, Title: r.Title}
	}
}

// ConfirmDeleteCmd looks up the recipe title and asks for confirmation
// before anything is removed
func ConfirmDeleteCmd(svc *service.RecipeService, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		title := "this recipe"
		if r, err := svc.Recipe(ctx, id); err == nil {
			title = r.Title
		}
		return ShowConfirmMsg{
			Prompt:  fmt.Sprintf("Delete %q? This cannot be undone.", title),
			Confirm: DeleteRecipeCmd(svc, id, title),
		}
	}
}

// DeleteRecipeCmd removes a user recipe
func DeleteRecipeCmd(svc *service.RecipeService, id int, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.Delete(ctx, id); err != nil {
			return ErrMsg{Err: err, Context: "deleting recipe"}
		}
		return RecipeDeletedMsg{RecipeID: id, Title: title}
	}
}

// ImportRecipeCmd scrapes a recipe from a web page
func ImportRecipeCmd(imp *importer.Importer, rawURL string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		recipe, err := imp.Import(ctx, rawURL)
		if err != nil {
			return ErrMsg{Err: err, Context: "importing recipe"}
		}
		return RecipeImportedMsg{Recipe: recipe}
	}
}

// AddGroceryItemCmd adds a free-form item to the grocery list
func AddGroceryItemCmd(svc *service.GroceryService, label string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		item, err := svc.Add(ctx, label, "", 0)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding grocery item"}
		}
		return GroceryItemAddedMsg{Item: item}
	}
}

// AddIngredientsCmd copies a recipe's ingredients onto the grocery list
func AddIngredientsCmd(svc *service.GroceryService, r *domain.Recipe) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		count, err := svc.AddRecipeIngredients(ctx, r)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding ingredients"}
		}
		return IngredientsAddedMsg{Count: count, Title: r.Title}
	}
}

// ToggleGroceryCmd flips a grocery item's done state
func ToggleGroceryCmd(svc *service.GroceryService, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		done, err := svc.Toggle(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "toggling grocery item"}
		}
		return GroceryToggledMsg{ItemID: id, Done: done}
	}
}

// RemoveGroceryCmd removes one grocery item
func RemoveGroceryCmd(svc *service.GroceryService, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.Remove(ctx, id); err != nil {
			return ErrMsg{Err: err, Context: "removing grocery item"}
		}
		return GroceryRemovedMsg{ItemID: id}
	}
}

// ClearCheckedCmd sweeps completed items off the grocery list
func ClearCheckedCmd(svc *service.GroceryService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		count, err := svc.ClearChecked(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "clearing checked items"}
		}
		return CheckedClearedMsg{Count: count}
	}
}

// AssignSlotCmd assigns a recipe to a planner slot
func AssignSlotCmd(svc *service.PlannerService, day int, slot domain.MealSlot, recipeID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.Assign(ctx, day, slot, recipeID); err != nil {
			return ErrMsg{Err: err, Context: "assigning plan slot"}
		}
		return SlotAssignedMsg{Day: day, Slot: slot, RecipeID: recipeID}
	}
}

// ClearSlotCmd empties a planner slot
func ClearSlotCmd(svc *service.PlannerService, day int, slot domain.MealSlot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.Clear(ctx, day, slot); err != nil {
			return ErrMsg{Err: err, Context: "clearing plan slot"}
		}
		return SlotAssignedMsg{Day: day, Slot: slot, RecipeID: 0}
	}
}

// ClearPlanCmd resets the whole week plan
func ClearPlanCmd(svc *service.PlannerService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.ClearAll(ctx); err != nil {
			return ErrMsg{Err: err, Context: "clearing plan"}
		}
		return PlanClearedMsg{}
	}
}

// RecordCookedCmd appends a completed cook to history
func RecordCookedCmd(svc *service.ProfileService, recipeID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.RecordCooked(ctx, recipeID); err != nil {
			return ErrMsg{Err: err, Context: "recording cook"}
		}
		return CookedRecordedMsg{RecipeID: recipeID}
	}
}

// SaveProfileCmd updates the profile name and favorite cuisine
func SaveProfileCmd(svc *service.ProfileService, name, favoriteCuisine string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		p, err := svc.SaveProfile(ctx, name, favoriteCuisine)
		if err != nil {
			return ErrMsg{Err: err, Context: "saving profile"}
		}
		return ProfileSavedMsg{Profile: p}
	}
}

// IndexSearchCmd loads every recipe into the search index
func IndexSearchCmd(recipes *service.RecipeService, search *service.SearchService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		all, err := recipes.All(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "indexing recipes"}
		}
		search.Index(all)
		return SearchIndexReadyMsg{Count: search.Count()}
	}
}

// OpenSourceCmd hands a recipe's source URL to the browser
func OpenSourceCmd(opener *adapter.Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening source"}
		}
		return SourceOpenedMsg{URL: url}
	}
}

// NavigateCmd wraps a route change into a command so components can
// trigger navigation from callbacks
func NavigateCmd(route Route) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: route}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
