// Package ui contains the Bubble Tea program that renders the list and detail
// screens. The Model never mutates feature state itself: every user intent is
// turned into a list.Action and dispatched to the Engine, and the screen is
// redrawn from whatever state the engine publishes.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (navigation.go for key presses, input.go for the filter line).
//   - Dispatch publishes synchronously, so handlers pick up the new state
//     straight away through refresh. Publications that happen later, when a
//     fetch effect completes, wake the program through stateFeed and arrive
//     as stateChangedMsg.
//   - refresh also sends OnAppear to a detail frame the first time it becomes
//     the top of the stack, and requests the next page when the cursor nears
//     the end of the loaded rows.
//
// Harness runs the same model without a terminal so tests can drive it with
// key presses and inspect the rendered view.
package ui
