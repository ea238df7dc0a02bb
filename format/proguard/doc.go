// Package proguard reads and writes ProGuard/R8 mapping files.
//
// Names use the dotted Java form in the file and internal form everywhere
// else; member types are converted to and from descriptors.
package proguard
