/*
Tagwm is a keyboard driven tiling window manager for X11. Every window lives
on one of a fixed set of tags, such as "1" to "9", and exactly one tag is
shown at a time. A status bar along the top of the first screen shows the
tags: the shown tag is highlighted, and tags with no windows are dimmed.


INSTALLATION

To install tagwm:
	1. Install Go (as per https://go.dev/doc/install or get it from
	   your distribution).
	2. Run "go install github.com/nigeltao/tagwm/tagwm@latest".

This will install tagwm in $GOBIN, or $HOME/go/bin if $GOBIN is empty.

Tagwm is designed to run from an Xsession session. Add this line to the end
of your ~/.xsession file:
	exec /path/to/your/tagwm
where the path is wherever "go install" wrote to.


USAGE

All keyboard shortcuts involve holding down the Super key, typically the
'Windows' key between the left Control and Alt keys. In the default
configuration, Super and the Enter key will open a terminal emulator and
Super and the 'D' key will open a program launcher.

Windows on the shown tag are tiled. The first window takes the left part of
the screen and the rest are stacked on the right. Super and 'J' or 'K' will
move the focus to the next or previous window, and with the Shift key held as
well they will move the focused window itself. Super and Alt and the Up or
Down arrow keys will put more or fewer windows in the left column, and
Super and Alt and the Left or Right arrow keys will shrink or grow it. Super
and '`' will cycle layouts: in the monocle layout every window fills the
screen. Super and 'F' will make the focused window fullscreen, covering the
bar, and Super and 'C' will close it.

Super and a number key like '1', '2', etc. will show that tag. With the
Shift key held as well, the focused window will move to that tag instead.
Super and Tab will go back to the previously shown tag, and Super and Alt and
'.' or ',' will cycle through the tags.

To quit tagwm and return to the log in screen, hold down Super and Alt and
Control and hit the Escape key.

A key press that is not bound to anything is passed over silently. A key
binding that fails, such as closing a window when there is none, is logged
and otherwise ignored.


CUSTOMIZATION

Customizing the key bindings, terminal emulator, program launcher, tags and
bar colors is done by editing $XDG_CONFIG_HOME/tagwm/config.yaml, usually
~/.config/tagwm/config.yaml. Run "tagwm config" to print the configuration
in use, which is a good starting point, and "tagwm check" to validate an
edited file without restarting. A binding with a key that cannot be parsed
stops tagwm from starting, with a message naming the binding.

A binding either runs a program or does something to the window manager:
	bindings:
	  - keys: M-Return
	    run: [$terminal]
	  - keys: M-S-{}
	    do: client_to_workspace
	    for_each_tag: true
Keys are written as modifiers followed by a key name, joined by '-': M is
Super, A is Alt, C is Control and S is Shift. Key names are single
characters or X keysym names such as Return, Tab, comma or F1. "tagwm keys"
lists each binding in effect.

Settings without a nested key can also be set from the environment, such as
TAGWM_TERMINAL=kitty. Logging is configured with environment variables such
as LOG_MODE.


DEVELOPMENT

When working on tagwm, it can be run in a nested X server such as Xephyr:
	Xephyr :9 2>/dev/null &
	go run ./tagwm run --display :9
"tagwm preview" draws the status bar to a PNG file, without any X server.
*/
package main
