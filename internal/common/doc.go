// Package common holds small generic helpers shared by the other packages.
package common
