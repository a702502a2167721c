// Command eventkernel runs sample workloads on the simulation kernel.
package main

func main() {
	Execute()
}
