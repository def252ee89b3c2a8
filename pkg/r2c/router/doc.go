// Package router runs the kiosk screen flow with explicit data flow between
// screens.
//
// Each screen is a function from an input to a result, and one transition
// function owns every routing decision. The reboot menu uses it for
// loading, menu, confirmation and execution:
//
//	r := router.New().WithLogger(logger)
//
//	r.Register(ScreenLoading, "loading", loadingScreen)
//	r.Register(ScreenMenu, "menu", menuScreen)
//	r.Register(ScreenConfirm, "confirm", confirmScreen)
//
//	r.OnTransition(func(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
//	    switch from {
//	    case ScreenMenu:
//	        res := result.(MenuResult)
//	        if res.Entry.Kind.IsPower() {
//	            stack.Push(from, MenuInput{}, res.Resume)
//	            return ScreenConfirm, ConfirmInput{Entry: res.Entry}
//	        }
//	        return ScreenExecute, ExecuteInput{Entry: res.Entry}
//	    case ScreenConfirm:
//	        // pop the stack to go back with the saved page and selection
//	    }
//	    return router.ScreenExit, nil
//	})
//
//	err := r.Run(ctx, ScreenLoading, nil)
//
// # Resume State
//
// A screen that can be returned to stores its position as the Resume value
// of a stack entry. Going back pops the entry and hands the resume state to
// the screen through its input. Dialogs leave Resume nil.
package router
