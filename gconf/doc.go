/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration entity, stored under the "_c:"
prefixed package name. Configuration is validated before it is written and it
is loaded from the genesis file "conf" section during chain initialization.

Not being able to load a configuration is a critical condition for the
application. Handlers that depend on it fail every transaction until the
chain is configured correctly.
*/
package gconf
