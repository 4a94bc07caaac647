// Package ui contains the Bubble Tea program that draws the message wall.
// The Model type focuses on message orchestration; the wall, notification,
// status and topic-input components own their state and mutate an in-memory
// render.Tree that View walks to draw each frame.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window size, frame ticks, backend events).
//   - A backend.Watcher streams decoded transport events; Update waits for
//     those events and hands them to the dispatcher, which applies messages to
//     the topic collection and state reports to the status view.
//   - Committing a topic in the input resets the wall and returns a command
//     that asks the transport to resubscribe.
//
// Timing:
//   - Highlights, toasts and notification auto-dismiss timers advance only on
//     frame ticks, so every mutation happens on the Bubble Tea goroutine. The
//     tick runs while the tree is animating or a timer is pending.
package ui
